package proposal

import (
	"context"

	"dao/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Proposal{})

		if err := tx.AutoMigrate(core.Proposal{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_proposal_trace", "trace_id").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_proposal_org", "org_id").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new proposal store
func New(db *db.DB) core.ProposalStore {
	return &proposalStore{db: db}
}

type proposalStore struct {
	db *db.DB
}

func (s *proposalStore) conn(tx *db.DB) *db.DB {
	if tx == nil {
		return s.db
	}

	return tx
}

// read queries inside tx when there is one, the read replica otherwise
func (s *proposalStore) read(tx *db.DB) *gorm.DB {
	if tx == nil {
		return s.db.View()
	}

	return tx.Update()
}

// Create a second proposal with the same trace id replaces the first one
func (s *proposalStore) Create(ctx context.Context, tx *db.DB, p *core.Proposal) error {
	tx = s.conn(tx)

	var existing core.Proposal
	err := tx.Update().Where("trace_id = ?", p.TraceID).First(&existing).Error
	if err != nil && !store.IsErrNotFound(err) {
		return err
	}

	if existing.ID > 0 {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		p.Version = existing.Version + 1
		return tx.Update().Save(p).Error
	}

	return tx.Update().Create(p).Error
}

func (s *proposalStore) Find(ctx context.Context, tx *db.DB, trace string) (*core.Proposal, error) {
	var p core.Proposal
	if err := s.read(tx).Where("trace_id = ?", trace).First(&p).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Proposal{}, nil
		}

		return nil, err
	}

	return &p, nil
}

func toUpdateParams(p *core.Proposal) map[string]interface{} {
	return map[string]interface{}{
		"yes_votes":     p.YesVotes,
		"no_votes":      p.NoVotes,
		"abstain_votes": p.AbstainVotes,
		"voters":        p.Voters,
		"executed":      p.Executed,
		"executed_at":   p.ExecutedAt,
	}
}

func (s *proposalStore) Update(ctx context.Context, tx *db.DB, p *core.Proposal) error {
	version := p.Version + 1
	updates := toUpdateParams(p)
	updates["version"] = version

	r := s.conn(tx).Update().Model(p).Where("version = ?", p.Version).Updates(updates)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	p.Version = version
	return nil
}

func (s *proposalStore) List(ctx context.Context, tx *db.DB, fromID int64, limit int) ([]*core.Proposal, error) {
	var proposals []*core.Proposal
	if err := s.read(tx).Where("id > ?", fromID).Order("id").Limit(limit).Find(&proposals).Error; err != nil {
		return nil, err
	}

	return proposals, nil
}
