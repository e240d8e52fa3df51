package api

import (
	"context"
	"time"

	"cheapflyer/internal/geo"
	"cheapflyer/internal/models"
)

// SessionHeader carries the opaque per-browser session id
const SessionHeader = "X-Session-ID"

// Locator resolves coordinates to the nearest reference airport.
type Locator interface {
	NearestAirport(lat, lng float64) geo.Match
	Airports() []models.Airport
}

// DealService synthesizes deals, packages and quotes.
type DealService interface {
	GenerateDeals(originCode, originCity string, count int) []models.FlightDeal
	VacationPackages() []models.VacationPackage
	SearchQuote(fromText, toText, departDate string) (*models.Quote, error)
	Airlines() []models.Airline
}

// LocationStore persists the location state of a session.
type LocationStore interface {
	Save(ctx context.Context, sessionID string, loc models.UserLocation) error
	Load(ctx context.Context, sessionID string) (models.UserLocation, error)
	Delete(ctx context.Context, sessionID string) error
}

// QuoteRecorder accepts quote log entries without blocking.
type QuoteRecorder interface {
	Record(entry *models.QuoteLogEntry) bool
}

// QuoteHistory reads back recorded searches.
type QuoteHistory interface {
	Recent(limit int) ([]models.QuoteLogEntry, error)
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Locator   Locator
	Deals     DealService
	Locations LocationStore
	Recorder  QuoteRecorder // optional
	History   QuoteHistory  // optional

	DefaultOrigin models.Airport
	DefaultCount  int
	MaxCount      int

	Now func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
