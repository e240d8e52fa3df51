package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cheapflyer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockQuoteLogRepository is a simple mock implementation of database.QuoteLogRepository
type mockQuoteLogRepository struct {
	mu        sync.Mutex
	entries   []*models.QuoteLogEntry
	batches   []int
	errors    []error
	cutoffs   []time.Time
	deleteN   int64
	deleteErr error
}

func (m *mockQuoteLogRepository) InsertBatch(entries []*models.QuoteLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, len(entries))
	if len(m.errors) > 0 {
		err := m.errors[0]
		m.errors = m.errors[1:]
		return err
	}
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *mockQuoteLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cutoffs = append(m.cutoffs, cutoff)
	return m.deleteN, m.deleteErr
}

func (m *mockQuoteLogRepository) Recent(limit int) ([]models.QuoteLogEntry, error) {
	return nil, nil
}

func (m *mockQuoteLogRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *mockQuoteLogRepository) batchSizes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.batches...)
}

func entry(from, to string) *models.QuoteLogEntry {
	return &models.QuoteLogEntry{FromQuery: from, ToQuery: to}
}

func TestNewQuoteRecorder(t *testing.T) {
	recorder := NewQuoteRecorder(&mockQuoteLogRepository{})

	require.NotNil(t, recorder)
	assert.Equal(t, 100, recorder.batchSize)
	assert.Equal(t, time.Second, recorder.flushInterval)
	assert.Equal(t, DefaultRecorderBuffer, cap(recorder.entries))
}

func TestNewQuoteRecorderWithConfig(t *testing.T) {
	recorder := NewQuoteRecorderWithConfig(&mockQuoteLogRepository{}, 10, 50, 500*time.Millisecond)

	require.NotNil(t, recorder)
	assert.Equal(t, 50, recorder.batchSize)
	assert.Equal(t, 500*time.Millisecond, recorder.flushInterval)
	assert.Equal(t, 10, cap(recorder.entries))

	recorder = NewQuoteRecorderWithConfig(&mockQuoteLogRepository{}, 0, 0, 0)
	assert.Equal(t, DefaultRecorderBatchSize, recorder.batchSize)
	assert.Equal(t, DefaultRecorderFlush, recorder.flushInterval)
}

func TestQuoteRecorder_RecordFillsDefaults(t *testing.T) {
	recorder := NewQuoteRecorderWithConfig(&mockQuoteLogRepository{}, 1, 1, time.Second)
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	recorder.now = func() time.Time { return fixed }

	e := entry("JFK", "LAX")
	require.True(t, recorder.Record(e))
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, fixed, e.Timestamp)

	assert.False(t, recorder.Record(nil))
}

func TestQuoteRecorder_DropsWhenFull(t *testing.T) {
	recorder := NewQuoteRecorderWithConfig(&mockQuoteLogRepository{}, 2, 10, time.Second)

	assert.True(t, recorder.Record(entry("a", "b")))
	assert.True(t, recorder.Record(entry("c", "d")))
	assert.False(t, recorder.Record(entry("e", "f")))
}

func TestQuoteRecorder_BatchFlush(t *testing.T) {
	repo := &mockQuoteLogRepository{}
	batchSize := 5
	recorder := NewQuoteRecorderWithConfig(repo, 100, batchSize, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = recorder.Start(ctx)
	}()

	for i := 0; i < batchSize; i++ {
		require.True(t, recorder.Record(entry("JFK", "LAX")))
	}

	require.Eventually(t, func() bool { return repo.count() == batchSize }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{batchSize}, repo.batchSizes())
}

func TestQuoteRecorder_TimeoutFlush(t *testing.T) {
	repo := &mockQuoteLogRepository{}
	flushInterval := 50 * time.Millisecond
	recorder := NewQuoteRecorderWithConfig(repo, 100, 10, flushInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = recorder.Start(ctx)
	}()

	// A single entry never fills the batch, the ticker must flush it
	require.True(t, recorder.Record(entry("SFO", "NRT")))

	require.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestQuoteRecorder_ContextCancellation(t *testing.T) {
	repo := &mockQuoteLogRepository{}
	recorder := NewQuoteRecorderWithConfig(repo, 100, 10, time.Hour)

	// Buffered before Start; cancellation must still persist them
	for i := 0; i < 3; i++ {
		require.True(t, recorder.Record(entry("LHR", "CDG")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := recorder.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, repo.count())
}

func TestQuoteRecorder_Close(t *testing.T) {
	repo := &mockQuoteLogRepository{}
	recorder := NewQuoteRecorderWithConfig(repo, 100, 10, time.Hour)

	done := make(chan error, 1)
	go func() {
		done <- recorder.Start(context.Background())
	}()

	require.True(t, recorder.Record(entry("DXB", "SIN")))
	require.True(t, recorder.Record(entry("SYD", "AKL")))
	recorder.Close()
	recorder.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("recorder did not stop after Close")
	}

	assert.Equal(t, 2, repo.count())
	assert.False(t, recorder.Record(entry("late", "entry")))
}

func TestQuoteRecorder_InsertErrorKeepsRunning(t *testing.T) {
	repo := &mockQuoteLogRepository{errors: []error{errors.New("disk full")}}
	recorder := NewQuoteRecorderWithConfig(repo, 100, 2, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = recorder.Start(ctx)
	}()

	// First batch fails and is discarded, second one lands
	for i := 0; i < 4; i++ {
		require.True(t, recorder.Record(entry("ORD", "MIA")))
	}

	require.Eventually(t, func() bool { return repo.count() == 2 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{2, 2}, repo.batchSizes())
}
