package api

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cheapflyer/internal/deals"
	"cheapflyer/internal/metrics"
	"cheapflyer/internal/models"
)

// HealthHandler reports liveness and the size of the loaded reference set.
func HealthHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"airports": len(deps.Locator.Airports()),
			"time":     deps.now().UTC(),
		})
	}
}

func ListAirportsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		airports := deps.Locator.Airports()
		return c.JSON(fiber.Map{"airports": airports, "count": len(airports)})
	}
}

func ListAirlinesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		airlines := deps.Deals.Airlines()
		return c.JSON(fiber.Map{"airlines": airlines, "count": len(airlines)})
	}
}

// NearestAirportHandler handles GET /v1/airports/nearest?lat=&lng=
func NearestAirportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, err := parseCoordinate(c.Query("lat"))
		if err != nil {
			return errBadRequest(c, "lat "+err.Error())
		}
		lng, err := parseCoordinate(c.Query("lng"))
		if err != nil {
			return errBadRequest(c, "lng "+err.Error())
		}

		match := deps.Locator.NearestAirport(lat, lng)
		metrics.NearestLookups.Inc()
		metrics.NearestDistance.Observe(float64(match.DistanceKm))

		return c.JSON(nearestResponse{Airport: match.Airport, DistanceKm: match.DistanceKm})
	}
}

// DealsHandler handles GET /v1/deals?origin=&city=&count=
// Without an origin the session's stored airport is used, then the default.
func DealsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count := deps.DefaultCount
		if raw := c.Query("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return errBadRequest(c, "count must be a non-negative integer")
			}
			count = n
		}
		if count > deps.MaxCount {
			count = deps.MaxCount
		}

		originCode := strings.ToUpper(strings.TrimSpace(c.Query("origin")))
		originCity := strings.TrimSpace(c.Query("city"))
		source := "query"

		if originCode == "" {
			source = "default"
			originCode = deps.DefaultOrigin.Code
			originCity = deps.DefaultOrigin.City

			if sessionID := c.Get(SessionHeader); sessionID != "" {
				loc, err := deps.Locations.Load(c.UserContext(), sessionID)
				switch {
				case err == nil:
					source = "session"
					originCode = loc.Airport.Code
					originCity = loc.Airport.City
				case !errors.Is(err, models.ErrLocationNotFound):
					// Fall back to the default origin rather than failing the page
					slog.Warn("Failed to load session location", "session_id", sessionID, "error", err)
				}
			}
		}

		generated := deps.Deals.GenerateDeals(originCode, originCity, count)
		metrics.DealsGenerated.WithLabelValues(source).Add(float64(len(generated)))
		for _, d := range generated {
			if d.IsHot {
				metrics.HotDeals.Inc()
			}
		}

		origin := models.Endpoint{Code: originCode, City: originCity}
		if len(generated) > 0 {
			origin = generated[0].Origin
		}

		return c.JSON(dealsResponse{
			Origin: origin,
			Source: source,
			Deals:  toDealResponses(generated),
		})
	}
}

func PackagesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"packages": toPackageResponses(deps.Deals.VacationPackages())})
	}
}

// SearchHandler handles GET /v1/search?from=&to=&depart=&return=
func SearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from := strings.TrimSpace(c.Query("from"))
		to := strings.TrimSpace(c.Query("to"))
		depart := strings.TrimSpace(c.Query("depart"))
		if from == "" || to == "" || depart == "" {
			return errBadRequest(c, "from, to and depart are required")
		}

		entry := &models.QuoteLogEntry{FromQuery: from, ToQuery: to}

		quote, err := deps.Deals.SearchQuote(from, to, depart)
		if err != nil {
			if errors.Is(err, deals.ErrNotFound) {
				metrics.Quotes.WithLabelValues("not_found").Inc()
				deps.record(entry)
				return errNotFound(c, err.Error())
			}
			metrics.Quotes.WithLabelValues("error").Inc()
			slog.Error("Quote search failed", "from", from, "to", to, "error", err)
			return errInternal(c, "failed to price route")
		}

		quote.ReturnDate = strings.TrimSpace(c.Query("return"))
		metrics.Quotes.WithLabelValues("found").Inc()

		entry.OriginCode = quote.Origin.Code
		entry.DestinationCode = quote.Destination.Code
		entry.Found = true
		entry.SalePrice = quote.SalePrice
		deps.record(entry)

		return c.JSON(toQuoteResponse(quote))
	}
}

// RecentSearchesHandler handles GET /v1/searches/recent?limit=
func RecentSearchesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := defaultRecentSize
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return errBadRequest(c, "limit must be a positive integer")
			}
			limit = min(n, maxRecentSize)
		}

		if deps.History == nil {
			return c.JSON(fiber.Map{"searches": []recentSearchResponse{}})
		}

		entries, err := deps.History.Recent(limit)
		if err != nil {
			slog.Error("Failed to read recent searches", "error", err)
			return errInternal(c, "failed to read recent searches")
		}

		return c.JSON(fiber.Map{"searches": toRecentSearchResponses(entries)})
	}
}

type locationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// PutLocationHandler resolves the caller's coordinates to the nearest airport
// and stores the result for the session.
func PutLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get(SessionHeader)
		if sessionID == "" {
			return errBadRequest(c, SessionHeader+" header is required")
		}

		var req locationRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Lat == nil || req.Lng == nil {
			return errBadRequest(c, "lat and lng are required")
		}
		if !isFinite(*req.Lat) || !isFinite(*req.Lng) {
			return errBadRequest(c, "lat and lng must be finite numbers")
		}

		match := deps.Locator.NearestAirport(*req.Lat, *req.Lng)
		metrics.NearestLookups.Inc()
		metrics.NearestDistance.Observe(float64(match.DistanceKm))

		loc := models.UserLocation{
			Lat:        *req.Lat,
			Lng:        *req.Lng,
			Airport:    match.Airport,
			DistanceKm: match.DistanceKm,
			Granted:    true,
			UpdatedAt:  deps.now().UTC(),
		}

		if err := deps.Locations.Save(c.UserContext(), sessionID, loc); err != nil {
			slog.Error("Failed to save session location", "session_id", sessionID, "error", err)
			return errInternal(c, "failed to save location")
		}

		return c.JSON(loc)
	}
}

func GetLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get(SessionHeader)
		if sessionID == "" {
			return errBadRequest(c, SessionHeader+" header is required")
		}

		loc, err := deps.Locations.Load(c.UserContext(), sessionID)
		if errors.Is(err, models.ErrLocationNotFound) {
			return errNotFound(c, "no location stored for session")
		}
		if err != nil {
			slog.Error("Failed to load session location", "session_id", sessionID, "error", err)
			return errInternal(c, "failed to load location")
		}

		return c.JSON(loc)
	}
}

func DeleteLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get(SessionHeader)
		if sessionID == "" {
			return errBadRequest(c, SessionHeader+" header is required")
		}

		if err := deps.Locations.Delete(c.UserContext(), sessionID); err != nil {
			slog.Error("Failed to delete session location", "session_id", sessionID, "error", err)
			return errInternal(c, "failed to delete location")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func (d *Dependencies) record(entry *models.QuoteLogEntry) {
	if d.Recorder == nil {
		return
	}
	d.Recorder.Record(entry)
}

func parseCoordinate(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(v) {
		return 0, errors.New("must be a number")
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
