package database

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cheapflyer/internal/models"
)

type AirportRepository interface {
	InsertBatch(airports []*models.Airport) error
	IsTablePopulated() (bool, error)
	List() ([]models.Airport, error)
	LoadFromMultipleCSV(csvPaths []string, batchSize int) (int, error)
}

type airportRepository struct {
	db *sql.DB
}

func NewAirportRepository(db *sql.DB) AirportRepository {
	return &airportRepository{db: db}
}

// InsertBatch inserts airports in a single transaction. Codes already present
// keep their original row so table order stays stable.
func (r *airportRepository) InsertBatch(airports []*models.Airport) error {
	if len(airports) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO airports (
		code, city, country, lat, lng, timezone
	) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, ap := range airports {
		if _, err := stmt.Exec(
			strings.ToUpper(ap.Code), ap.City, ap.Country, ap.Lat, ap.Lng, ap.Timezone,
		); err != nil {
			return fmt.Errorf("failed to insert airport %s: %w", ap.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *airportRepository) IsTablePopulated() (bool, error) {
	var ignored int
	err := r.db.QueryRow("SELECT 1 FROM airports LIMIT 1").Scan(&ignored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check airports table: %w", err)
	}
	return true, nil
}

// List returns every airport in insertion order
func (r *airportRepository) List() ([]models.Airport, error) {
	rows, err := r.db.Query(`SELECT code, city, country, lat, lng, timezone
		FROM airports ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query airports: %w", err)
	}
	defer rows.Close()

	var airports []models.Airport
	for rows.Next() {
		var ap models.Airport
		if err := rows.Scan(&ap.Code, &ap.City, &ap.Country, &ap.Lat, &ap.Lng, &ap.Timezone); err != nil {
			return nil, fmt.Errorf("failed to scan airport: %w", err)
		}
		airports = append(airports, ap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate airports: %w", err)
	}

	return airports, nil
}

// LoadFromMultipleCSV appends airports from CSV files with a
// code,city,country,lat,lng[,timezone] header. Rows with a missing code or
// unparseable coordinates are skipped. Returns the number of rows read.
func (r *airportRepository) LoadFromMultipleCSV(csvPaths []string, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	batch := make([]*models.Airport, 0, batchSize)
	total := 0

	for _, csvPath := range csvPaths {
		n, err := r.loadCSV(csvPath, batchSize, &batch)
		total += n
		if err != nil {
			return total, err
		}
	}

	if len(batch) > 0 {
		if err := r.InsertBatch(batch); err != nil {
			return total, fmt.Errorf("failed to insert final batch: %w", err)
		}
	}

	return total, nil
}

func (r *airportRepository) loadCSV(csvPath string, batchSize int, batch *[]*models.Airport) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV file %s: %w", csvPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header from %s: %w", csvPath, err)
	}

	headerMap := make(map[string]int, len(header))
	for i, h := range header {
		headerMap[strings.ToLower(strings.Trim(strings.TrimSpace(h), "'\""))] = i
	}
	for _, required := range []string{"code", "city", "country", "lat", "lng"} {
		if _, ok := headerMap[required]; !ok {
			return 0, fmt.Errorf("CSV file %s is missing column %q", csvPath, required)
		}
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read CSV record from %s: %w", csvPath, err)
		}

		code := getField(record, headerMap, "code")
		if code == "" {
			continue
		}
		lat, err := strconv.ParseFloat(getField(record, headerMap, "lat"), 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(getField(record, headerMap, "lng"), 64)
		if err != nil {
			continue
		}

		*batch = append(*batch, &models.Airport{
			Code:     strings.ToUpper(code),
			City:     getField(record, headerMap, "city"),
			Country:  getField(record, headerMap, "country"),
			Lat:      lat,
			Lng:      lng,
			Timezone: getField(record, headerMap, "timezone"),
		})
		count++

		if len(*batch) >= batchSize {
			if err := r.InsertBatch(*batch); err != nil {
				return count, fmt.Errorf("failed to insert batch: %w", err)
			}
			*batch = (*batch)[:0]
		}
	}

	return count, nil
}

// getField safely retrieves a field from a CSV record by header name
func getField(record []string, headerMap map[string]int, fieldName string) string {
	if idx, ok := headerMap[fieldName]; ok && idx < len(record) {
		return strings.Trim(strings.TrimSpace(record[idx]), "'\"")
	}
	return ""
}
