package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"cheapflyer/internal/database"
	"cheapflyer/internal/metrics"
	"cheapflyer/internal/models"
)

const (
	DefaultRecorderBuffer    = 1024
	DefaultRecorderBatchSize = 100
	DefaultRecorderFlush     = time.Second
)

// QuoteRecorder buffers quote log entries from request handlers and commits
// them to the database in batches
type QuoteRecorder struct {
	repo          database.QuoteLogRepository
	entries       chan *models.QuoteLogEntry
	batchSize     int           // maximum number of entries in a batch before committing
	flushInterval time.Duration // time to flush a batch even if not full
	now           func() time.Time

	mu     sync.RWMutex
	closed bool
}

// NewQuoteRecorder uses a batch size of 100 and a flush interval of 1 second
func NewQuoteRecorder(repo database.QuoteLogRepository) *QuoteRecorder {
	return NewQuoteRecorderWithConfig(repo, DefaultRecorderBuffer, DefaultRecorderBatchSize, DefaultRecorderFlush)
}

// NewQuoteRecorderWithConfig creates a recorder with custom buffer and batch settings
func NewQuoteRecorderWithConfig(repo database.QuoteLogRepository, bufferSize, batchSize int, flushInterval time.Duration) *QuoteRecorder {
	if bufferSize <= 0 {
		bufferSize = DefaultRecorderBuffer
	}
	if batchSize <= 0 {
		batchSize = DefaultRecorderBatchSize
	}
	if flushInterval <= 0 {
		flushInterval = DefaultRecorderFlush
	}
	return &QuoteRecorder{
		repo:          repo,
		entries:       make(chan *models.QuoteLogEntry, bufferSize),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		now:           time.Now,
	}
}

// Record queues an entry without blocking. It returns false when the buffer
// is full or the recorder has been closed; the entry is then dropped.
func (r *QuoteRecorder) Record(entry *models.QuoteLogEntry) bool {
	if entry == nil {
		return false
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now().UTC()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false
	}

	select {
	case r.entries <- entry:
		return true
	default:
		metrics.QuoteLogDropped.Inc()
		slog.Warn("Quote recorder full, dropping entry",
			"from", entry.FromQuery,
			"to", entry.ToQuery,
			"buffer_size", cap(r.entries),
		)
		return false
	}
}

// Close stops accepting entries. Start flushes what is buffered and returns.
func (r *QuoteRecorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.entries)
}

// Start consumes entries and writes them in batches. It blocks until the
// context is cancelled or the recorder is closed. Batches are flushed when
// they reach batchSize or when flushInterval elapses with entries pending.
func (r *QuoteRecorder) Start(ctx context.Context) error {
	batch := make([]*models.QuoteLogEntry, 0, r.batchSize)

	flushBatch := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.repo.InsertBatch(batch); err != nil {
			metrics.QuoteLogFlushErrors.Inc()
			slog.Error("Error inserting batch of quote log entries", "batch_size", len(batch), "error", err)
		} else {
			metrics.QuoteLogFlushed.Add(float64(len(batch)))
			slog.Debug("Inserted batch of quote log entries", "batch_size", len(batch))
		}
		batch = batch[:0]
	}

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			batch = r.drain(batch)
			flushBatch()
			return ctx.Err()

		case <-ticker.C:
			flushBatch()

		case entry, ok := <-r.entries:
			if !ok {
				flushBatch()
				return nil
			}
			if entry == nil {
				continue
			}

			batch = append(batch, entry)
			if len(batch) >= r.batchSize {
				flushBatch()
			}
		}
	}
}

// drain appends entries already buffered in the channel without blocking
func (r *QuoteRecorder) drain(batch []*models.QuoteLogEntry) []*models.QuoteLogEntry {
	for {
		select {
		case entry, ok := <-r.entries:
			if !ok {
				return batch
			}
			if entry != nil {
				batch = append(batch, entry)
			}
		default:
			return batch
		}
	}
}
