package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheapflyer/internal/config"
	"cheapflyer/internal/database"
	"cheapflyer/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		HTTPAddr:  "127.0.0.1:0",
		CORSAllow: "*",
		DBPath:    filepath.Join(t.TempDir(), "daemon.db"),
		Deals:     config.DealsConfig{DefaultCount: 6, MaxCount: 50, Seed: 42},
		Quotes: config.QuotesConfig{
			BatchSize:      10,
			BatchTimeout:   1,
			RetentionHours: 24,
			PruneInterval:  60,
		},
		Location: config.LocationConfig{Backend: "sqlite"},
		Log:      config.LogConfig{Level: "info", Format: "text"},
	}
}

func TestNew_SeedsReferenceAirports(t *testing.T) {
	cfg := testConfig(t)

	d, err := New(cfg)
	require.NoError(t, err)
	defer d.Stop(context.Background())

	assert.Equal(t, 27, d.airports)

	resp, err := d.App().Test(httptest.NewRequest("GET", "/v1/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestNew_ExtraAirportsCSV(t *testing.T) {
	cfg := testConfig(t)
	csvPath := filepath.Join(t.TempDir(), "extra.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"code,city,country,lat,lng,timezone\n"+
			"LIS,Lisbon,PT,38.7742,-9.1342,Europe/Lisbon\n"+
			"JFK,Duplicate,US,0,0,\n"), 0o600))
	cfg.Reference.ExtraAirportsCSV = []string{csvPath}

	d, err := New(cfg)
	require.NoError(t, err)
	defer d.Stop(context.Background())

	// JFK already exists and keeps its built-in row
	assert.Equal(t, 28, d.airports)

	resp, err := d.App().Test(httptest.NewRequest("GET", "/v1/airports/nearest?lat=38.72&lng=-9.14", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var result struct {
		Airport models.Airport `json:"airport"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "LIS", result.Airport.Code)
}

func TestNew_BadCSV(t *testing.T) {
	cfg := testConfig(t)
	cfg.Reference.ExtraAirportsCSV = []string{filepath.Join(t.TempDir(), "missing.csv")}

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_ReopenKeepsAirports(t *testing.T) {
	cfg := testConfig(t)

	d, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, d.Stop(context.Background()))

	d, err = New(cfg)
	require.NoError(t, err)
	defer d.Stop(context.Background())
	assert.Equal(t, 27, d.airports)
}

func TestDaemon_StartStop_PersistsQuoteLog(t *testing.T) {
	cfg := testConfig(t)

	d, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, d.Start())

	base := fmt.Sprintf("http://%s", d.Addr())
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(base + "/v1/search?from=JFK&to=paris&depart=2030-06-01")
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	resp, err = client.Get(base + "/v1/search?from=atlantis&to=paris&depart=2030-06-01")
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, 404, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
	require.NoError(t, d.Stop(ctx))

	// Stop flushes the recorder before closing the database
	db, err := database.New(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	entries, err := db.QuoteLogRepository().Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	found := 0
	for _, e := range entries {
		if e.Found {
			found++
			assert.Equal(t, "JFK", e.OriginCode)
			assert.Equal(t, "CDG", e.DestinationCode)
		}
	}
	assert.Equal(t, 1, found)
}

func TestDaemon_StartFailsOnBusyAddress(t *testing.T) {
	first, err := New(testConfig(t))
	require.NoError(t, err)
	require.NoError(t, first.Start())
	defer first.Stop(context.Background())

	cfg := testConfig(t)
	cfg.HTTPAddr = first.Addr()
	second, err := New(cfg)
	require.NoError(t, err)
	defer second.Stop(context.Background())

	assert.Error(t, second.Start())
}

func TestLoadReferenceAirports_DefaultOrigin(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "ref.db"))
	require.NoError(t, err)
	defer db.Close()

	airports, err := loadReferenceAirports(db.AirportRepository(), nil)
	require.NoError(t, err)
	require.Len(t, airports, 27)
	assert.Equal(t, "JFK", airports[0].Code)
	assert.Equal(t, "JFK", defaultOrigin(airports).Code)

	// Without JFK the first airport is the default
	assert.Equal(t, "LHR", defaultOrigin(airports[10:]).Code)
}
