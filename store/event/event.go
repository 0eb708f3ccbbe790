package event

import (
	"context"

	"dao/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})

		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_events_subject", "subject").Error; err != nil {
			return err
		}

		return nil
	})
}

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.EventStore {
	return &eventStore{
		db: db,
	}
}

func (s *eventStore) conn(tx *db.DB) *db.DB {
	if tx == nil {
		return s.db
	}

	return tx
}

// read queries inside tx when there is one, the read replica otherwise
func (s *eventStore) read(tx *db.DB) *gorm.DB {
	if tx == nil {
		return s.db.View()
	}

	return tx.Update()
}

func (s *eventStore) Create(ctx context.Context, tx *db.DB, events ...*core.Event) error {
	tx = s.conn(tx)

	for _, event := range events {
		if err := tx.Update().Create(event).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *eventStore) List(ctx context.Context, tx *db.DB, fromID int64, limit int) ([]*core.Event, error) {
	if limit <= 0 {
		limit = 500
	}

	var events []*core.Event
	if err := s.read(tx).Where("id > ?", fromID).Order("id ASC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
