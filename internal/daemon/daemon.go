package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"cheapflyer/internal/api"
	"cheapflyer/internal/config"
	"cheapflyer/internal/database"
	"cheapflyer/internal/deals"
	"cheapflyer/internal/geo"
	"cheapflyer/internal/models"
	"cheapflyer/internal/reference"
	"cheapflyer/internal/scheduler"
	"cheapflyer/internal/tasks"
	"cheapflyer/internal/valkey"
)

// csvBatchSize is the insert batch used when importing extra airports
const csvBatchSize = 500

// Daemon owns every long-lived component of the service
type Daemon struct {
	ctx       context.Context
	cancel    context.CancelFunc
	cfg       *config.Config
	database  *database.DB
	valkey    *valkey.LocationStore // nil unless location.backend is valkey
	scheduler *scheduler.Scheduler
	recorder  *tasks.QuoteRecorder
	app       *fiber.App
	airports  int

	wg       sync.WaitGroup
	listener net.Listener
	stopOnce sync.Once
}

// New opens storage, builds the reference set and wires the HTTP API.
// Nothing runs until Start is called.
func New(cfg *config.Config) (*Daemon, error) {
	ctx, cancel := context.WithCancel(context.Background())

	db, err := database.New(cfg.DBPath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	airports, err := loadReferenceAirports(db.AirportRepository(), cfg.Reference.ExtraAirportsCSV)
	if err != nil {
		cancel()
		db.Close()
		return nil, err
	}

	var synthOpts []deals.Option
	if cfg.Deals.Seed != 0 {
		synthOpts = append(synthOpts, deals.WithRand(deals.NewSeededRand(cfg.Deals.Seed)))
		slog.Info("Using seeded deal randomness", "seed", cfg.Deals.Seed)
	}
	synth := deals.New(airports, reference.Airlines(), synthOpts...)
	locator := geo.NewLocator(airports)

	d := &Daemon{
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		database:  db,
		scheduler: scheduler.New(ctx),
		airports:  len(airports),
	}

	locations, err := d.openLocationStore()
	if err != nil {
		cancel()
		db.Close()
		return nil, err
	}

	quoteLog := db.QuoteLogRepository()
	d.recorder = tasks.NewQuoteRecorderWithConfig(
		quoteLog,
		tasks.DefaultRecorderBuffer,
		cfg.Quotes.BatchSize,
		time.Duration(cfg.Quotes.BatchTimeout)*time.Second,
	)

	d.scheduler.AddTask(tasks.NewQuoteLogPruner(
		quoteLog,
		time.Duration(cfg.Quotes.RetentionHours)*time.Hour,
		time.Duration(cfg.Quotes.PruneInterval)*time.Minute,
	))

	d.app = newHTTPApp(cfg, &api.Dependencies{
		Locator:       locator,
		Deals:         synth,
		Locations:     locations,
		Recorder:      d.recorder,
		History:       quoteLog,
		DefaultOrigin: defaultOrigin(airports),
		DefaultCount:  cfg.Deals.DefaultCount,
		MaxCount:      cfg.Deals.MaxCount,
	})

	return d, nil
}

func (d *Daemon) openLocationStore() (api.LocationStore, error) {
	if d.cfg.Location.Backend != "valkey" {
		return d.database.LocationRepository(), nil
	}

	store, err := valkey.New(d.cfg.Valkey.Addr, time.Duration(d.cfg.Location.TTLHours)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(d.ctx, 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to ping valkey at %s: %w", d.cfg.Valkey.Addr, err)
	}

	d.valkey = store
	slog.Info("Using valkey location store", "addr", d.cfg.Valkey.Addr, "ttl_hours", d.cfg.Location.TTLHours)
	return store, nil
}

// loadReferenceAirports seeds the airports table with the built-in set on
// first run, appends any extra CSV files and returns the table in order.
func loadReferenceAirports(repo database.AirportRepository, csvPaths []string) ([]models.Airport, error) {
	populated, err := repo.IsTablePopulated()
	if err != nil {
		return nil, fmt.Errorf("failed to check airports table: %w", err)
	}

	if !populated {
		builtin := reference.Airports()
		batch := make([]*models.Airport, 0, len(builtin))
		for i := range builtin {
			batch = append(batch, &builtin[i])
		}
		if err := repo.InsertBatch(batch); err != nil {
			return nil, fmt.Errorf("failed to seed airports: %w", err)
		}
		slog.Info("Seeded airports table", "count", len(batch))
	}

	if len(csvPaths) > 0 {
		n, err := repo.LoadFromMultipleCSV(csvPaths, csvBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load extra airports: %w", err)
		}
		slog.Info("Loaded extra airports from CSV", "csv_paths", csvPaths, "rows", n)
	}

	airports, err := repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list airports: %w", err)
	}
	if len(airports) == 0 {
		return nil, errors.New("airports table is empty")
	}

	return airports, nil
}

// defaultOrigin prefers the stored copy of the built-in default so a CSV
// override of its city or coordinates is honoured
func defaultOrigin(airports []models.Airport) models.Airport {
	for _, a := range airports {
		if a.Code == reference.DefaultOrigin.Code {
			return a
		}
	}
	return airports[0]
}

func newHTTPApp(cfg *config.Config, deps *api.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "CheapFlyer API",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		BodyLimit:             64 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllow,
		AllowMethods: "GET,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + api.SessionHeader,
		MaxAge:       3600,
	}))

	api.SetupRoutes(app, deps)
	return app
}

// App exposes the HTTP application, mainly for tests
func (d *Daemon) App() *fiber.App {
	return d.app
}

// Addr returns the bound listen address once Start has succeeded
func (d *Daemon) Addr() string {
	if d.listener == nil {
		return ""
	}
	return d.listener.Addr().String()
}

// Start launches the quote recorder, the scheduler and the HTTP server
func (d *Daemon) Start() error {
	slog.Info("Starting daemon", "airports", d.airports, "location_backend", d.cfg.Location.Backend)

	ln, err := net.Listen("tcp", d.cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", d.cfg.HTTPAddr, err)
	}
	d.listener = ln

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.recorder.Start(d.ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Quote recorder stopped", "error", err)
		}
	}()

	d.scheduler.Start()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.app.Listener(ln); err != nil {
			slog.Error("HTTP server stopped", "error", err)
		}
	}()

	slog.Info("Daemon started successfully", "addr", ln.Addr().String())
	return nil
}

// Stop drains in-flight requests, flushes pending quote log entries and
// closes storage. It is safe to call more than once.
func (d *Daemon) Stop(ctx context.Context) error {
	var stopErr error
	d.stopOnce.Do(func() {
		slog.Info("Stopping daemon")

		if err := d.app.ShutdownWithContext(ctx); err != nil {
			slog.Error("Error shutting down HTTP server", "error", err)
			stopErr = err
		}

		// No more handlers can record; close so the recorder flushes and exits
		d.recorder.Close()
		d.scheduler.Stop()
		d.wg.Wait()
		d.cancel()

		if d.valkey != nil {
			d.valkey.Close()
		}

		if err := d.database.Close(); err != nil {
			slog.Error("Error closing database", "error", err)
			if stopErr == nil {
				stopErr = err
			}
		}

		slog.Info("Daemon stopped")
	})
	return stopErr
}
