package notifier

import (
	"context"
	"time"

	"dao/core"
	"dao/worker"

	"github.com/fox-one/pkg/logger"
)

const checkpointKey = "notifier_checkpoint"

// Config notifier worker config
type Config struct {
	Location string
	Schedule string
	Batch    int
	// Grace how long a hole in event ids is waited for before it is
	// taken as a rolled back transaction
	Grace time.Duration
}

// Notifier drain the event outbox into the notifier
type Notifier struct {
	worker.BaseJob
	events   core.EventStore
	cursors  core.CursorStore
	notifier core.EventNotifier
	batch    int
	grace    time.Duration
	now      func() time.Time
}

// New new notifier worker
func New(
	cfg Config,
	events core.EventStore,
	cursors core.CursorStore,
	notifier core.EventNotifier,
) (*Notifier, error) {
	w := &Notifier{
		events:   events,
		cursors:  cursors,
		notifier: notifier,
		batch:    cfg.Batch,
		grace:    cfg.Grace,
		now:      time.Now,
	}

	if w.batch <= 0 {
		w.batch = 100
	}

	if w.grace <= 0 {
		w.grace = time.Minute
	}

	spec := cfg.Schedule
	if spec == "" {
		spec = "@every 1s"
	}

	w.Cron = worker.NewCron(cfg.Location)
	if _, err := w.Cron.AddFunc(spec, w.Run); err != nil {
		return nil, err
	}

	w.OnWork = func() error {
		return w.onWork(context.Background())
	}

	return w, nil
}

func (w *Notifier) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "notifier")

	cursor, err := w.cursors.Cursor(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("cursors.Cursor", checkpointKey)
		return err
	}

	events, err := w.events.List(ctx, nil, cursor, w.batch)
	if err != nil {
		log.WithError(err).Errorln("events.List")
		return err
	}

	events = w.contiguous(cursor, events)
	if len(events) == 0 {
		return nil
	}

	if err := w.notifier.Notify(ctx, events); err != nil {
		log.WithError(err).Errorln("notifier.Notify")
		return err
	}

	cursor = events[len(events)-1].ID
	if err := w.cursors.SaveCursor(ctx, checkpointKey, cursor); err != nil {
		log.WithError(err).Errorln("cursors.SaveCursor", checkpointKey)
		return err
	}

	log.Debugf("%d events notified, cursor %d", len(events), cursor)
	return nil
}

// contiguous cut events at the first hole in their ids. Ids are taken when
// a row is inserted, so a hole may be a transaction that has not committed
// yet. Once the event after the hole is older than the grace period the
// hole is passed over.
func (w *Notifier) contiguous(cursor int64, events []*core.Event) []*core.Event {
	now := w.now()

	prev := cursor
	for idx, e := range events {
		if e.ID != prev+1 && now.Sub(e.CreatedAt) < w.grace {
			return events[:idx]
		}

		prev = e.ID
	}

	return events
}
