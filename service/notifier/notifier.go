package notifier

import (
	"context"

	"dao/core"

	"github.com/fox-one/pkg/logger"
)

// Multi deliver events to every notifier in order, stopping at the first
// failure
func Multi(notifiers ...core.EventNotifier) core.EventNotifier {
	return multiNotifier(notifiers)
}

type multiNotifier []core.EventNotifier

func (m multiNotifier) Notify(ctx context.Context, events []*core.Event) error {
	for _, n := range m {
		if err := n.Notify(ctx, events); err != nil {
			return err
		}
	}

	return nil
}

// Log write every event to the context logger
func Log() core.EventNotifier {
	return logNotifier{}
}

type logNotifier struct{}

func (logNotifier) Notify(ctx context.Context, events []*core.Event) error {
	log := logger.FromContext(ctx)

	for _, e := range events {
		log.WithField("event", e.ID).
			WithField("subject", e.Subject).
			WithField("actor", e.Actor).
			Infoln(e.Kind, e.Data.String())
	}

	return nil
}
