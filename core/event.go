package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
)

// EventKind notification kind
type EventKind string

const (
	EventProposalCreated     EventKind = "proposal_created"
	EventVoteSubmitted       EventKind = "vote_submitted"
	EventProposalExecuted    EventKind = "proposal_executed"
	EventOrganizationCreated EventKind = "organization_created"
	EventOrganizationUpdated EventKind = "organization_updated"
	EventMemberAdded         EventKind = "member_added"
	EventMemberRemoved       EventKind = "member_removed"
	EventThresholdsChanged   EventKind = "thresholds_changed"
)

type (
	// Event notification written in the same transaction as the operation
	Event struct {
		ID        int64          `sql:"PRIMARY_KEY" json:"id,omitempty"`
		CreatedAt time.Time      `json:"created_at,omitempty"`
		Kind      EventKind      `sql:"size:32" json:"kind,omitempty"`
		Subject   string         `sql:"size:64" json:"subject,omitempty"`
		Actor     string         `sql:"size:64" json:"actor,omitempty"`
		Data      types.JSONText `sql:"type:TEXT" json:"data,omitempty"`
	}

	// MemberEventData payload of member_added and member_removed
	MemberEventData struct {
		Account string `json:"account"`
		Removed bool   `json:"removed"`
	}

	// VoteEventData payload of vote_submitted
	VoteEventData struct {
		Voter string `json:"voter"`
		Kind  string `json:"kind"`
	}

	// EventStore event outbox
	EventStore interface {
		Create(ctx context.Context, tx *db.DB, events ...*Event) error
		List(ctx context.Context, tx *db.DB, fromID int64, limit int) ([]*Event, error)
	}

	// EventNotifier deliver events outside the process
	EventNotifier interface {
		Notify(ctx context.Context, events []*Event) error
	}

	// CursorStore read positions of background workers
	CursorStore interface {
		Cursor(ctx context.Context, key string) (int64, error)
		SaveCursor(ctx context.Context, key string, cursor int64) error
	}
)

// NewEvent build an event raised by inv
func NewEvent(inv *Invocation, kind EventKind, subject string, data interface{}) *Event {
	event := &Event{
		CreatedAt: inv.Time,
		Kind:      kind,
		Subject:   subject,
		Actor:     inv.Sender,
		Data:      types.JSONText("{}"),
	}

	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			event.Data = b
		}
	}

	return event
}
