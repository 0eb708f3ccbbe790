package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"dao/core"
	"dao/internal/dbtest"
	"dao/store/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCursors map[string]int64

func (m memoryCursors) Cursor(ctx context.Context, key string) (int64, error) {
	return m[key], nil
}

func (m memoryCursors) SaveCursor(ctx context.Context, key string, cursor int64) error {
	m[key] = cursor
	return nil
}

type recorder struct {
	batches [][]*core.Event
	err     error
}

func (r *recorder) Notify(ctx context.Context, events []*core.Event) error {
	if r.err != nil {
		return r.err
	}

	r.batches = append(r.batches, events)
	return nil
}

func TestNotifier(t *testing.T) {
	ctx := context.Background()
	events := event.New(dbtest.Open(t))
	cursors := memoryCursors{}
	rec := &recorder{}

	w, err := New(Config{Batch: 2}, events, cursors, rec)
	require.NoError(t, err)

	inv := core.NewInvocation("alice", time.Unix(1, 0))
	for _, subject := range []string{"a", "b", "c"} {
		require.NoError(t, events.Create(ctx, nil, core.NewEvent(inv, core.EventProposalCreated, subject, nil)))
	}

	require.NoError(t, w.onWork(ctx))
	require.NoError(t, w.onWork(ctx))
	require.NoError(t, w.onWork(ctx))

	require.Len(t, rec.batches, 2)
	assert.Len(t, rec.batches[0], 2)
	assert.Equal(t, "c", rec.batches[1][0].Subject)
	assert.Equal(t, rec.batches[1][0].ID, cursors[checkpointKey])

	// a failed delivery keeps the cursor
	require.NoError(t, events.Create(ctx, nil, core.NewEvent(inv, core.EventProposalCreated, "d", nil)))
	rec.err = errors.New("offline")
	before := cursors[checkpointKey]
	assert.Error(t, w.onWork(ctx))
	assert.Equal(t, before, cursors[checkpointKey])

	rec.err = nil
	w.Run()
	require.Len(t, rec.batches, 3)
	assert.Equal(t, "d", rec.batches[2][0].Subject)
}

func TestNotifierWaitsForLateCommits(t *testing.T) {
	ctx := context.Background()
	events := event.New(dbtest.Open(t))
	cursors := memoryCursors{}
	rec := &recorder{}

	w, err := New(Config{Grace: time.Minute}, events, cursors, rec)
	require.NoError(t, err)

	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	w.now = func() time.Time { return now }

	create := func(id int64, subject string) {
		e := core.NewEvent(core.NewInvocation("alice", start), core.EventProposalCreated, subject, nil)
		e.ID = id
		require.NoError(t, events.Create(ctx, nil, e))
	}

	// 2 is still inside its transaction when 3 commits
	create(1, "a")
	create(3, "c")
	require.NoError(t, w.onWork(ctx))
	require.Len(t, rec.batches, 1)
	require.Len(t, rec.batches[0], 1)
	assert.Equal(t, "a", rec.batches[0][0].Subject)
	assert.Equal(t, int64(1), cursors[checkpointKey])

	create(2, "b")
	require.NoError(t, w.onWork(ctx))
	require.Len(t, rec.batches, 2)
	require.Len(t, rec.batches[1], 2)
	assert.Equal(t, "b", rec.batches[1][0].Subject)
	assert.Equal(t, "c", rec.batches[1][1].Subject)
	assert.Equal(t, int64(3), cursors[checkpointKey])

	// 4 never shows up, 5 goes out once the grace period is over
	create(5, "e")
	require.NoError(t, w.onWork(ctx))
	require.Len(t, rec.batches, 2)
	assert.Equal(t, int64(3), cursors[checkpointKey])

	now = start.Add(2 * time.Minute)
	require.NoError(t, w.onWork(ctx))
	require.Len(t, rec.batches, 3)
	assert.Equal(t, "e", rec.batches[2][0].Subject)
	assert.Equal(t, int64(5), cursors[checkpointKey])
}

func TestNewInvalidSchedule(t *testing.T) {
	_, err := New(Config{Schedule: "every now and then"}, nil, memoryCursors{}, &recorder{})
	assert.Error(t, err)
}
