package deals

import (
	"math"
	"time"

	"cheapflyer/internal/geo"
	"cheapflyer/internal/models"
)

// Pricing heuristic constants
const (
	FarePerKm        = 0.10 // Economy fare per great-circle kilometer
	MinBasePrice     = 200
	MaxBasePrice     = 2500
	WeekendSurcharge = 1.15

	// Original price is basePrice * U[MinVariation, MinVariation+VariationSpan)
	MinVariation  = 0.85
	VariationSpan = 0.30

	MinDiscountPercent = 25
	MaxDiscountPercent = 55
	HotDealThreshold   = 40 // Deals at or above this discount are flagged hot
)

// Deal shaping constants, all inclusive ranges
const (
	MinDepartOffsetDays = 14
	MaxDepartOffsetDays = 73
	MinTripDays         = 5
	MaxTripDays         = 12
	MinSeatsLeft        = 2
	MaxSeatsLeft        = 9
)

// Price is the outcome of the pricing heuristic
type Price struct {
	Original        int
	Sale            int
	DiscountPercent int
}

// fallbackPrice is used when either endpoint has no known coordinates
var fallbackPrice = Price{Original: 500, Sale: 350, DiscountPercent: 30}

// quotePrice prices a trip departing on depart. Draws one float and one int from
// the random source unless an endpoint is unknown.
func (s *Synthesizer) quotePrice(origin, dest *models.Airport, depart time.Time) Price {
	if origin == nil || dest == nil {
		return fallbackPrice
	}

	distance := geo.Haversine(origin.Lat, origin.Lng, dest.Lat, dest.Lng)
	base := clamp(math.Round(distance*FarePerKm), MinBasePrice, MaxBasePrice)
	if isWeekend(depart) {
		base *= WeekendSurcharge
	}

	variation := MinVariation + s.rnd.Float64()*VariationSpan
	original := int(math.Round(base * variation))

	discount := s.between(MinDiscountPercent, MaxDiscountPercent)

	return Price{
		Original:        original,
		Sale:            salePrice(original, discount),
		DiscountPercent: discount,
	}
}

func salePrice(original, discountPercent int) int {
	return int(math.Round(float64(original) * (1 - float64(discountPercent)/100)))
}

func clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(value, hi))
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// between returns a uniform integer in [lo, hi]
func (s *Synthesizer) between(lo, hi int) int {
	return lo + s.rnd.IntN(hi-lo+1)
}
