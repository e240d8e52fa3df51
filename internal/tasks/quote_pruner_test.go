package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteLogPruner(t *testing.T) {
	repo := &mockQuoteLogRepository{deleteN: 7}
	pruner := NewQuoteLogPruner(repo, 48*time.Hour, 30*time.Minute)
	now := time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)
	pruner.now = func() time.Time { return now }

	assert.Equal(t, "quote_log_pruner", pruner.Name())
	assert.Equal(t, 30*time.Minute, pruner.Interval())

	require.NoError(t, pruner.Run(context.Background()))
	require.Len(t, repo.cutoffs, 1)
	assert.Equal(t, time.Date(2030, 1, 8, 12, 0, 0, 0, time.UTC), repo.cutoffs[0])
}

func TestQuoteLogPruner_Error(t *testing.T) {
	repo := &mockQuoteLogRepository{deleteErr: errors.New("locked")}
	pruner := NewQuoteLogPruner(repo, time.Hour, time.Minute)

	err := pruner.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}

func TestQuoteLogPruner_CancelledContext(t *testing.T) {
	repo := &mockQuoteLogRepository{}
	pruner := NewQuoteLogPruner(repo, time.Hour, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, pruner.Run(ctx), context.Canceled)
	assert.Empty(t, repo.cutoffs)
}
