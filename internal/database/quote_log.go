package database

import (
	"database/sql"
	"fmt"
	"time"

	"cheapflyer/internal/models"
)

type QuoteLogRepository interface {
	InsertBatch(entries []*models.QuoteLogEntry) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
	Recent(limit int) ([]models.QuoteLogEntry, error)
}

type quoteLogRepository struct {
	db *sql.DB
}

func NewQuoteLogRepository(db *sql.DB) QuoteLogRepository {
	return &quoteLogRepository{db: db}
}

// InsertBatch inserts quote log entries in a single transaction
func (r *quoteLogRepository) InsertBatch(entries []*models.QuoteLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO quote_log (
		id, timestamp, from_query, to_query, origin_code, destination_code, found, sale_price
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(
			e.ID,
			e.Timestamp.UTC(),
			e.FromQuery,
			e.ToQuery,
			e.OriginCode,
			e.DestinationCode,
			e.Found,
			e.SalePrice,
		); err != nil {
			return fmt.Errorf("failed to insert quote log entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteOlderThan removes entries logged before cutoff
func (r *quoteLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM quote_log WHERE timestamp < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete quote log entries: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n, nil
}

// Recent returns up to limit entries, newest first
func (r *quoteLogRepository) Recent(limit int) ([]models.QuoteLogEntry, error) {
	rows, err := r.db.Query(`SELECT id, timestamp, from_query, to_query,
		origin_code, destination_code, found, sale_price
		FROM quote_log ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote log: %w", err)
	}
	defer rows.Close()

	entries := make([]models.QuoteLogEntry, 0, limit)
	for rows.Next() {
		var e models.QuoteLogEntry
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.FromQuery, &e.ToQuery,
			&e.OriginCode, &e.DestinationCode, &e.Found, &e.SalePrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote log: %w", err)
	}

	return entries, nil
}
