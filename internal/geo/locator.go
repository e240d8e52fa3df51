// Package geo resolves coordinates to the nearest airport of a fixed reference set.
package geo

import (
	"math"
	"slices"

	"cheapflyer/internal/models"
)

// Match is the result of a nearest-airport lookup
type Match struct {
	Airport    models.Airport
	DistanceKm int // Rounded to the nearest whole kilometer
}

// Locator performs nearest-airport lookups. It is immutable after construction
// and safe for concurrent use.
type Locator struct {
	airports []models.Airport
}

// NewLocator builds a locator over airports, keeping their order for tie-breaks.
// It panics when airports is empty.
func NewLocator(airports []models.Airport) *Locator {
	if len(airports) == 0 {
		panic("geo: locator requires at least one airport")
	}
	return &Locator{airports: slices.Clone(airports)}
}

// NearestAirport returns the airport with the smallest great-circle distance to
// (lat, lng). On equal distances the airport listed first wins. Coordinates are
// not validated.
func (l *Locator) NearestAirport(lat, lng float64) Match {
	nearest := 0
	minDistance := math.Inf(1)

	for i, a := range l.airports {
		d := Haversine(lat, lng, a.Lat, a.Lng)
		if d < minDistance {
			minDistance = d
			nearest = i
		}
	}

	distance := 0
	if !math.IsInf(minDistance, 0) && !math.IsNaN(minDistance) {
		distance = int(math.Round(minDistance))
	}

	return Match{Airport: l.airports[nearest], DistanceKm: distance}
}

// Airports returns the locator's reference set in lookup order
func (l *Locator) Airports() []models.Airport {
	return slices.Clone(l.airports)
}

// Len returns the size of the reference set
func (l *Locator) Len() int {
	return len(l.airports)
}
