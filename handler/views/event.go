package views

import (
	"encoding/json"
	"time"

	"dao/core"
)

type Event struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Kind      string          `json:"kind"`
	Subject   string          `json:"subject"`
	Actor     string          `json:"actor"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func EventView(e core.Event) Event {
	return Event{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Kind:      string(e.Kind),
		Subject:   e.Subject,
		Actor:     e.Actor,
		Data:      json.RawMessage(e.Data),
	}
}

func EventViews(events []*core.Event) []Event {
	var items = make([]Event, len(events))
	for i, e := range events {
		items[i] = EventView(*e)
	}
	return items
}
