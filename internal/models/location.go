package models

import (
	"errors"
	"time"
)

// ErrLocationNotFound is returned by location stores when a session has no saved state
var ErrLocationNotFound = errors.New("location not found")

// UserLocation is the last known position of a session and the airport resolved for it
type UserLocation struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Airport    Airport   `json:"airport"`
	DistanceKm int       `json:"distance_km"`
	Granted    bool      `json:"granted"`
	UpdatedAt  time.Time `json:"updated_at"`
}
