package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cheapflyer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	tmpFile := filepath.Join(t.TempDir(), "test_cheapflyer.db")

	db, err := New(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, db)

	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	return db
}

func writeCSV(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "airports.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)
	assert.NotNil(t, db)
}

func TestNew_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, db.AirportRepository().InsertBatch([]*models.Airport{
		{Code: "JFK", City: "New York", Country: "US", Lat: 40.6413, Lng: -73.7781},
	}))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()

	populated, err := db.AirportRepository().IsTablePopulated()
	require.NoError(t, err)
	assert.True(t, populated)
}

func TestAirportRepository_InsertAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AirportRepository()

	populated, err := repo.IsTablePopulated()
	require.NoError(t, err)
	assert.False(t, populated)

	err = repo.InsertBatch([]*models.Airport{
		{Code: "LHR", City: "London", Country: "GB", Lat: 51.47, Lng: -0.4543, Timezone: "Europe/London"},
		{Code: "jfk", City: "New York", Country: "US", Lat: 40.6413, Lng: -73.7781},
		{Code: "CDG", City: "Paris", Country: "FR", Lat: 49.0097, Lng: 2.5479},
	})
	require.NoError(t, err)

	populated, err = repo.IsTablePopulated()
	require.NoError(t, err)
	assert.True(t, populated)

	airports, err := repo.List()
	require.NoError(t, err)
	require.Len(t, airports, 3)

	// Insertion order is preserved and codes are upper-cased
	assert.Equal(t, "LHR", airports[0].Code)
	assert.Equal(t, "Europe/London", airports[0].Timezone)
	assert.Equal(t, "JFK", airports[1].Code)
	assert.Equal(t, "CDG", airports[2].Code)
	assert.InDelta(t, 49.0097, airports[2].Lat, 1e-9)
}

func TestAirportRepository_InsertBatch_Empty(t *testing.T) {
	db := setupTestDB(t)

	err := db.AirportRepository().InsertBatch([]*models.Airport{})
	assert.NoError(t, err)
}

func TestAirportRepository_InsertBatch_DuplicateKeepsFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AirportRepository()

	require.NoError(t, repo.InsertBatch([]*models.Airport{
		{Code: "JFK", City: "New York", Country: "US", Lat: 40.6413, Lng: -73.7781},
		{Code: "LAX", City: "Los Angeles", Country: "US", Lat: 33.9416, Lng: -118.4085},
	}))
	require.NoError(t, repo.InsertBatch([]*models.Airport{
		{Code: "JFK", City: "Queens", Country: "US", Lat: 0, Lng: 0},
	}))

	airports, err := repo.List()
	require.NoError(t, err)
	require.Len(t, airports, 2)
	assert.Equal(t, "New York", airports[0].City)
}

func TestAirportRepository_LoadFromMultipleCSV(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AirportRepository()

	first := writeCSV(t, `code,city,country,lat,lng,timezone
"AMS","Amsterdam","NL",52.3105,4.7683,Europe/Amsterdam
MAD,Madrid,ES,40.4983,-3.5676,
,Nowhere,XX,1,1,
BAD,Broken,XX,north,1,
`)
	second := writeCSV(t, `Code,City,Country,Lat,Lng
lis,Lisbon,PT,38.7742,-9.1342
`)

	n, err := repo.LoadFromMultipleCSV([]string{first, second}, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	airports, err := repo.List()
	require.NoError(t, err)
	require.Len(t, airports, 3)
	assert.Equal(t, "AMS", airports[0].Code)
	assert.Equal(t, "Europe/Amsterdam", airports[0].Timezone)
	assert.Equal(t, "MAD", airports[1].Code)
	assert.Equal(t, "LIS", airports[2].Code)
	assert.Equal(t, "Lisbon", airports[2].City)
}

func TestAirportRepository_LoadFromMultipleCSV_Errors(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AirportRepository()

	t.Run("missing file", func(t *testing.T) {
		_, err := repo.LoadFromMultipleCSV([]string{filepath.Join(t.TempDir(), "missing.csv")}, 10)
		assert.Error(t, err)
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeCSV(t, "code,city,country,lat\nAMS,Amsterdam,NL,52.3\n")
		_, err := repo.LoadFromMultipleCSV([]string{path}, 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"lng"`)
	})
}

func TestQuoteLogRepository_InsertRecentPrune(t *testing.T) {
	db := setupTestDB(t)
	repo := db.QuoteLogRepository()

	base := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	entries := []*models.QuoteLogEntry{
		{ID: "a", Timestamp: base.Add(-48 * time.Hour), FromQuery: "new york", ToQuery: "paris",
			OriginCode: "JFK", DestinationCode: "CDG", Found: true, SalePrice: 420},
		{ID: "b", Timestamp: base.Add(-time.Hour), FromQuery: "xyz", ToQuery: "LAX"},
		{ID: "c", Timestamp: base, FromQuery: "SFO", ToQuery: "tokyo",
			OriginCode: "SFO", DestinationCode: "NRT", Found: true, SalePrice: 610},
	}
	require.NoError(t, repo.InsertBatch(entries))

	recent, err := repo.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Equal(t, "a", recent[2].ID)
	assert.True(t, recent[0].Found)
	assert.Equal(t, 610, recent[0].SalePrice)
	assert.False(t, recent[1].Found)
	assert.Empty(t, recent[1].OriginCode)
	assert.True(t, recent[0].Timestamp.Equal(base))

	limited, err := repo.Recent(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "c", limited[0].ID)

	deleted, err := repo.DeleteOlderThan(base.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := repo.Recent(10)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	deleted, err = repo.DeleteOlderThan(base.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestQuoteLogRepository_InsertBatch_EmptyAndDuplicates(t *testing.T) {
	db := setupTestDB(t)
	repo := db.QuoteLogRepository()

	assert.NoError(t, repo.InsertBatch(nil))

	entry := &models.QuoteLogEntry{ID: "dup", Timestamp: time.Now(), FromQuery: "a", ToQuery: "b"}
	assert.NoError(t, repo.InsertBatch([]*models.QuoteLogEntry{entry, entry}))

	recent, err := repo.Recent(10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestLocationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := db.LocationRepository()
	ctx := context.Background()

	_, err := repo.Load(ctx, "session-1")
	assert.ErrorIs(t, err, models.ErrLocationNotFound)

	updated := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	loc := models.UserLocation{
		Lat:        40.7128,
		Lng:        -74.0060,
		Airport:    models.Airport{Code: "JFK", City: "New York", Country: "US", Lat: 40.6413, Lng: -73.7781},
		DistanceKm: 21,
		Granted:    true,
		UpdatedAt:  updated,
	}
	require.NoError(t, repo.Save(ctx, "session-1", loc))

	got, err := repo.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "JFK", got.Airport.Code)
	assert.Equal(t, 21, got.DistanceKm)
	assert.True(t, got.Granted)
	assert.InDelta(t, 40.7128, got.Lat, 1e-9)
	assert.True(t, got.UpdatedAt.Equal(updated))

	// Saving again overwrites
	loc.Airport = models.Airport{Code: "LAX", City: "Los Angeles", Country: "US", Lat: 33.9416, Lng: -118.4085}
	loc.DistanceKm = 15
	require.NoError(t, repo.Save(ctx, "session-1", loc))

	got, err = repo.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "LAX", got.Airport.Code)

	_, err = repo.Load(ctx, "session-2")
	assert.ErrorIs(t, err, models.ErrLocationNotFound)

	require.NoError(t, repo.Delete(ctx, "session-1"))
	require.NoError(t, repo.Delete(ctx, "session-1"))

	_, err = repo.Load(ctx, "session-1")
	assert.ErrorIs(t, err, models.ErrLocationNotFound)
}
