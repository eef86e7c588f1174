package journal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/janghq/whereabouts-board/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ err error }

func (s *failingSink) AppendLog(context.Context, models.LogEntry) error { return s.err }

type capturingSink struct{ entries []models.LogEntry }

func (s *capturingSink) AppendLog(_ context.Context, e models.LogEntry) error {
	s.entries = append(s.entries, e)
	return nil
}

func fixedAt() time.Time { return time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC) }

func TestAppend_AssignsIDAndTimestamp(t *testing.T) {
	ring := NewRing(10, WithClock(clock.NewFixed(fixedAt())))

	entry, err := ring.Append(context.Background(), "kim", "kim marked out to Client HQ")
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "kim", entry.Actor)
	assert.Equal(t, fixedAt(), entry.CreatedAt)
}

func TestRecent_ReturnsNewestFirst(t *testing.T) {
	ring := NewRing(10)
	for i := 0; i < 3; i++ {
		_, err := ring.Append(context.Background(), "kim", fmt.Sprintf("event %d", i))
		require.NoError(t, err)
	}

	entries, err := ring.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "event 2", entries[0].Message)
	assert.Equal(t, "event 0", entries[2].Message)
}

func TestRecent_IsBoundedByN(t *testing.T) {
	ring := NewRing(10)
	for i := 0; i < 5; i++ {
		_, err := ring.Append(context.Background(), "kim", fmt.Sprintf("event %d", i))
		require.NoError(t, err)
	}

	entries, err := ring.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "event 4", entries[0].Message)
	assert.Equal(t, "event 3", entries[1].Message)
}

func TestRecent_DoesNotMutateState(t *testing.T) {
	ring := NewRing(10)
	_, err := ring.Append(context.Background(), "kim", "only entry")
	require.NoError(t, err)

	first, err := ring.Recent(context.Background(), 10)
	require.NoError(t, err)
	second, err := ring.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRing_EvictsOldestBeyondCapacity(t *testing.T) {
	ring := NewRing(3)
	for i := 0; i < 5; i++ {
		_, err := ring.Append(context.Background(), "kim", fmt.Sprintf("event %d", i))
		require.NoError(t, err)
	}

	entries, err := ring.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "event 4", entries[0].Message)
	assert.Equal(t, "event 2", entries[2].Message)
}

func TestSinkFailure_DoesNotFailAppend(t *testing.T) {
	ring := NewRing(10, WithSink(&failingSink{err: errors.New("db down")}))

	entry, err := ring.Append(context.Background(), "kim", "still recorded")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, 1, ring.Dropped())

	entries, err := ring.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSink_ReceivesEveryEntry(t *testing.T) {
	sink := &capturingSink{}
	ring := NewRing(2, WithSink(sink))

	// Capacity bounds the live tail only; the sink keeps full history.
	for i := 0; i < 4; i++ {
		_, err := ring.Append(context.Background(), "kim", fmt.Sprintf("event %d", i))
		require.NoError(t, err)
	}

	assert.Len(t, sink.entries, 4)
	assert.Equal(t, 0, ring.Dropped())
}
