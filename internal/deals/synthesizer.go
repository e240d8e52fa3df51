// Package deals synthesizes mock flight deals, the vacation package catalog and
// route price quotes from the airport reference set.
package deals

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"cheapflyer/internal/geo"
	"cheapflyer/internal/models"
	"cheapflyer/internal/reference"

	"github.com/google/uuid"
)

// DateLayout is the format of departure dates accepted by SearchQuote
const DateLayout = "2006-01-02"

// ErrNotFound is returned when a free-text airport query matches nothing
var ErrNotFound = errors.New("airport not found")

// Synthesizer generates deals and quotes. It holds no mutable state of its own;
// concurrent use is safe as long as the Rand it was given is.
type Synthesizer struct {
	airports []models.Airport
	airlines []models.Airline
	rnd      Rand
	now      func() time.Time
}

// Option customizes a Synthesizer
type Option func(*Synthesizer)

// WithRand replaces the process-global random source
func WithRand(r Rand) Option {
	return func(s *Synthesizer) { s.rnd = r }
}

// WithNow replaces the wall clock used to compute "today"
func WithNow(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

// New creates a synthesizer over the given reference tables. It panics when
// either table is empty.
func New(airports []models.Airport, airlines []models.Airline, opts ...Option) *Synthesizer {
	if len(airports) == 0 || len(airlines) == 0 {
		panic("deals: synthesizer requires airports and airlines")
	}

	s := &Synthesizer{
		airports: slices.Clone(airports),
		airlines: slices.Clone(airlines),
		rnd:      globalRand{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateDeals returns up to count deals from originCode to randomly chosen
// destinations, best discount first. Fewer deals are returned only when the
// reference set runs out of destinations.
func (s *Synthesizer) GenerateDeals(originCode, originCity string, count int) []models.FlightDeal {
	if count <= 0 {
		return []models.FlightDeal{}
	}

	origin := s.lookup(originCode)

	pool := make([]models.Airport, 0, len(s.airports))
	for _, a := range s.airports {
		if !strings.EqualFold(a.Code, originCode) {
			pool = append(pool, a)
		}
	}
	s.shuffle(pool)
	if count < len(pool) {
		pool = pool[:count]
	}

	from := models.Endpoint{Code: originCode, City: originCity}
	if origin != nil {
		from.Country = origin.Country
		if from.City == "" {
			from.City = origin.City
		}
	}

	today := s.today()
	stamp := s.now().UnixMilli()
	deals := make([]models.FlightDeal, 0, len(pool))

	for i := range pool {
		dest := &pool[i]

		departDate := today.AddDate(0, 0, s.between(MinDepartOffsetDays, MaxDepartOffsetDays))
		returnDate := departDate.AddDate(0, 0, s.between(MinTripDays, MaxTripDays))
		price := s.quotePrice(origin, dest, departDate)
		airline := s.airlines[s.rnd.IntN(len(s.airlines))]
		seats := s.between(MinSeatsLeft, MaxSeatsLeft)

		deals = append(deals, models.FlightDeal{
			ID:              fmt.Sprintf("deal-%d-%d", stamp, i),
			Origin:          from,
			Destination:     models.Endpoint{Code: dest.Code, City: dest.City, Country: dest.Country},
			Airline:         airline,
			OriginalPrice:   price.Original,
			SalePrice:       price.Sale,
			DiscountPercent: price.DiscountPercent,
			DepartDate:      departDate,
			ReturnDate:      returnDate,
			SeatsLeft:       seats,
			IsHot:           price.DiscountPercent >= HotDealThreshold,
			Image:           reference.DestinationImage(dest.City),
		})
	}

	slices.SortStableFunc(deals, func(a, b models.FlightDeal) int {
		return b.DiscountPercent - a.DiscountPercent
	})

	return deals
}

// SearchQuote prices a single trip between two free-text airport queries.
// departDate is YYYY-MM-DD; dates in the past are priced as-is and an
// unparseable date is treated as today.
func (s *Synthesizer) SearchQuote(fromText, toText, departDate string) (*models.Quote, error) {
	from, ok := s.Resolve(fromText)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, fromText)
	}
	to, ok := s.Resolve(toText)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, toText)
	}

	today := s.today()
	days := 0
	if d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(departDate), today.Location()); err == nil {
		days = calendarDays(today, d)
	}

	price := s.quotePrice(&from, &to, today.AddDate(0, 0, days))
	airline := s.airlines[s.rnd.IntN(len(s.airlines))]

	return &models.Quote{
		ID:              uuid.NewString(),
		Origin:          from,
		Destination:     to,
		OriginalPrice:   price.Original,
		SalePrice:       price.Sale,
		DiscountPercent: price.DiscountPercent,
		DepartDate:      departDate,
		DaysFromNow:     days,
		Airline:         airline,
	}, nil
}

// Resolve matches a free-text query against the reference set: exact code or
// city substring, case-insensitive, first match in table order.
func (s *Synthesizer) Resolve(query string) (models.Airport, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.Airport{}, false
	}

	for _, a := range s.airports {
		if strings.ToLower(a.Code) == q || strings.Contains(strings.ToLower(a.City), q) {
			return a, true
		}
	}
	return models.Airport{}, false
}

// Airlines returns the airline table deals are decorated with
func (s *Synthesizer) Airlines() []models.Airline {
	return slices.Clone(s.airlines)
}

func (s *Synthesizer) lookup(code string) *models.Airport {
	for i := range s.airports {
		if strings.EqualFold(s.airports[i].Code, code) {
			a := s.airports[i]
			return &a
		}
	}
	return nil
}

// shuffle is a Fisher-Yates shuffle driven by the injected source
func (s *Synthesizer) shuffle(pool []models.Airport) {
	for i := len(pool) - 1; i > 0; i-- {
		j := s.rnd.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
}

func (s *Synthesizer) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// calendarDays counts whole days from a to b ignoring DST transitions
func calendarDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
