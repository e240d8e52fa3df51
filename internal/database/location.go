package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cheapflyer/internal/models"
)

// LocationRepository persists the last resolved location per session
type LocationRepository interface {
	Save(ctx context.Context, sessionID string, loc models.UserLocation) error
	Load(ctx context.Context, sessionID string) (models.UserLocation, error)
	Delete(ctx context.Context, sessionID string) error
}

type locationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Save(ctx context.Context, sessionID string, loc models.UserLocation) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO user_locations (
		session_id, lat, lng, airport_code, airport_city, airport_country,
		airport_lat, airport_lng, distance_km, granted, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		lat = excluded.lat,
		lng = excluded.lng,
		airport_code = excluded.airport_code,
		airport_city = excluded.airport_city,
		airport_country = excluded.airport_country,
		airport_lat = excluded.airport_lat,
		airport_lng = excluded.airport_lng,
		distance_km = excluded.distance_km,
		granted = excluded.granted,
		updated_at = excluded.updated_at`,
		sessionID,
		loc.Lat, loc.Lng,
		loc.Airport.Code, loc.Airport.City, loc.Airport.Country,
		loc.Airport.Lat, loc.Airport.Lng,
		loc.DistanceKm, loc.Granted, loc.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save location for session %s: %w", sessionID, err)
	}
	return nil
}

// Load returns models.ErrLocationNotFound when the session has no record
func (r *locationRepository) Load(ctx context.Context, sessionID string) (models.UserLocation, error) {
	var loc models.UserLocation
	err := r.db.QueryRowContext(ctx, `SELECT lat, lng, airport_code, airport_city,
		airport_country, airport_lat, airport_lng, distance_km, granted, updated_at
		FROM user_locations WHERE session_id = ?`, sessionID).Scan(
		&loc.Lat, &loc.Lng,
		&loc.Airport.Code, &loc.Airport.City, &loc.Airport.Country,
		&loc.Airport.Lat, &loc.Airport.Lng,
		&loc.DistanceKm, &loc.Granted, &loc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserLocation{}, models.ErrLocationNotFound
	}
	if err != nil {
		return models.UserLocation{}, fmt.Errorf("failed to load location for session %s: %w", sessionID, err)
	}
	return loc, nil
}

// Delete is idempotent
func (r *locationRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_locations WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete location for session %s: %w", sessionID, err)
	}
	return nil
}
