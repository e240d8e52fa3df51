package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"cheapflyer/internal/models"
)

// KeyPrefix namespaces session location keys
const KeyPrefix = "cheapflyer:location:"

// LocationStore keeps per-session location state in Valkey with a TTL.
type LocationStore struct {
	client valkey.Client
	ttl    time.Duration
}

// New connects to Valkey at addr.
func New(addr string, ttl time.Duration) (*LocationStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &LocationStore{client: client, ttl: ttl}, nil
}

// Save stores loc under the session key, refreshing its TTL.
func (s *LocationStore) Save(ctx context.Context, sessionID string, loc models.UserLocation) error {
	payload, err := encodeLocation(loc)
	if err != nil {
		return err
	}
	cmd := s.client.Do(ctx,
		s.client.B().Set().Key(locationKey(sessionID)).Value(string(payload)).Ex(s.ttl).Build(),
	)
	if err := cmd.Error(); err != nil {
		return fmt.Errorf("failed to save location for session %s: %w", sessionID, err)
	}
	return nil
}

// Load returns models.ErrLocationNotFound for unknown or expired sessions.
func (s *LocationStore) Load(ctx context.Context, sessionID string) (models.UserLocation, error) {
	b, err := s.client.Do(ctx, s.client.B().Get().Key(locationKey(sessionID)).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return models.UserLocation{}, models.ErrLocationNotFound
	}
	if err != nil {
		return models.UserLocation{}, fmt.Errorf("failed to load location for session %s: %w", sessionID, err)
	}
	return decodeLocation(b)
}

// Delete removes the session key.
func (s *LocationStore) Delete(ctx context.Context, sessionID string) error {
	cmd := s.client.Do(ctx, s.client.B().Del().Key(locationKey(sessionID)).Build())
	if err := cmd.Error(); err != nil {
		return fmt.Errorf("failed to delete location for session %s: %w", sessionID, err)
	}
	return nil
}

// Ping checks connectivity.
func (s *LocationStore) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (s *LocationStore) Close() {
	s.client.Close()
}

func locationKey(sessionID string) string {
	return KeyPrefix + sessionID
}

func encodeLocation(loc models.UserLocation) ([]byte, error) {
	b, err := json.Marshal(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode location: %w", err)
	}
	return b, nil
}

func decodeLocation(b []byte) (models.UserLocation, error) {
	var loc models.UserLocation
	if err := json.Unmarshal(b, &loc); err != nil {
		return models.UserLocation{}, fmt.Errorf("failed to decode location: %w", err)
	}
	return loc, nil
}
