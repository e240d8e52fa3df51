package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite connection and hands out per-table repositories
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// optimizeSQLite tunes SQLite for a small, mostly-read workload with
// bursts of batched writes from the quote recorder
func optimizeSQLite(db *sql.DB) error {
	// WAL lets API reads proceed while the recorder writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// 64MB page cache, in memory only
	if _, err := db.Exec("PRAGMA cache_size=-64000"); err != nil {
		return fmt.Errorf("failed to set cache size: %w", err)
	}

	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA temp_store=MEMORY"); err != nil {
		return fmt.Errorf("failed to set temp_store: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// AirportRepository returns the repository for the airports reference table
func (d *DB) AirportRepository() AirportRepository {
	return NewAirportRepository(d.db)
}

// QuoteLogRepository returns the repository for the quote_log table
func (d *DB) QuoteLogRepository() QuoteLogRepository {
	return NewQuoteLogRepository(d.db)
}

// LocationRepository returns the SQLite-backed session location store
func (d *DB) LocationRepository() LocationRepository {
	return NewLocationRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	// Rowid order is the reference table order; nearest-airport ties and
	// free-text resolution depend on it.
	airportsSchema := `CREATE TABLE IF NOT EXISTS airports (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE,
		city TEXT NOT NULL,
		country TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		timezone TEXT NOT NULL DEFAULT ''
	);`

	quoteLogSchema := `CREATE TABLE IF NOT EXISTS quote_log (
		id TEXT PRIMARY KEY,
		timestamp TIMESTAMP NOT NULL,
		from_query TEXT NOT NULL,
		to_query TEXT NOT NULL,
		origin_code TEXT NOT NULL DEFAULT '',
		destination_code TEXT NOT NULL DEFAULT '',
		found INTEGER NOT NULL,
		sale_price INTEGER NOT NULL DEFAULT 0
	);`

	locationsSchema := `CREATE TABLE IF NOT EXISTS user_locations (
		session_id TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		airport_code TEXT NOT NULL,
		airport_city TEXT NOT NULL,
		airport_country TEXT NOT NULL,
		airport_lat REAL NOT NULL,
		airport_lng REAL NOT NULL,
		distance_km INTEGER NOT NULL,
		granted INTEGER NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`

	tables := []struct {
		name   string
		schema string
	}{
		{"airports", airportsSchema},
		{"quote_log", quoteLogSchema},
		{"user_locations", locationsSchema},
	}

	for _, tbl := range tables {
		if _, err := d.db.Exec(tbl.schema); err != nil {
			return fmt.Errorf("failed to create %s table: %w", tbl.name, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_quote_log_timestamp ON quote_log(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_log_route ON quote_log(origin_code, destination_code)`,
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
