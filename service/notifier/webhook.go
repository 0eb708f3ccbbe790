package notifier

import (
	"context"
	"fmt"

	"dao/core"
	"dao/pkg/resthttp"
)

// Webhook post events as json to url
func Webhook(url string) core.EventNotifier {
	return &webhook{url: url}
}

type webhook struct {
	url string
}

func (w *webhook) Notify(ctx context.Context, events []*core.Event) error {
	if len(events) == 0 {
		return nil
	}

	first, last := events[0].ID, events[len(events)-1].ID
	req := resthttp.WithRequestID(ctx, fmt.Sprintf("events-%d-%d", first, last))
	return resthttp.Post(req, w.url, map[string]interface{}{
		"events": events,
	})
}
