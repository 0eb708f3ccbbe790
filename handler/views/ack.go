package views

import (
	"time"

	"dao/core"
)

// Ack acknowledges an accepted command
type Ack struct {
	Subject string    `json:"subject"`
	Sender  string    `json:"sender"`
	At      time.Time `json:"at"`
}

func AckView(subject string, inv *core.Invocation) Ack {
	return Ack{
		Subject: subject,
		Sender:  inv.Sender,
		At:      inv.Time,
	}
}
