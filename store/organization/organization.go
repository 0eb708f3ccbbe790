package organization

import (
	"context"

	"dao/core"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/yiplee/structs"
)

type organizationStore struct {
	db *db.DB
}

// New new organization store
func New(db *db.DB) core.OrganizationStore {
	return &organizationStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Organization{})

		if err := tx.AutoMigrate(core.Organization{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_organizations_address", "address").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *organizationStore) conn(tx *db.DB) *db.DB {
	if tx == nil {
		return s.db
	}

	return tx
}

// read queries inside tx when there is one, the read replica otherwise
func (s *organizationStore) read(tx *db.DB) *gorm.DB {
	if tx == nil {
		return s.db.View()
	}

	return tx.Update()
}

func (s *organizationStore) Create(ctx context.Context, tx *db.DB, org *core.Organization) error {
	tx = s.conn(tx)

	var existing core.Organization
	err := tx.Update().Where("address = ?", org.Address).First(&existing).Error
	if err != nil && !store.IsErrNotFound(err) {
		return err
	}

	if existing.ID > 0 {
		org.ID = existing.ID
		org.CreatedAt = existing.CreatedAt
		org.Version = existing.Version + 1
		return tx.Update().Save(org).Error
	}

	return tx.Update().Create(org).Error
}

func (s *organizationStore) Find(ctx context.Context, tx *db.DB, address string) (*core.Organization, error) {
	var org core.Organization
	if err := s.read(tx).Where("address = ?", address).First(&org).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Organization{}, nil
		}

		return nil, err
	}

	return &org, nil
}

func toUpdateParams(org *core.Organization) map[string]interface{} {
	params := map[string]interface{}{
		"name":        org.Name,
		"description": org.Description,
		"members":     org.Members,
	}

	policy := structs.New(org.Policy)
	policy.TagName = "json"
	for key, value := range policy.Map() {
		params["policy_"+key] = value
	}

	return params
}

func (s *organizationStore) Update(ctx context.Context, tx *db.DB, org *core.Organization) error {
	version := org.Version + 1
	updates := toUpdateParams(org)
	updates["version"] = version

	r := s.conn(tx).Update().Model(org).Where("version = ?", org.Version).Updates(updates)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	org.Version = version
	return nil
}

func (s *organizationStore) IsMember(ctx context.Context, tx *db.DB, account string) (bool, error) {
	if account == "" {
		return false, nil
	}

	var orgs []*core.Organization
	if err := s.read(tx).Select("members").Find(&orgs).Error; err != nil {
		return false, err
	}

	for _, org := range orgs {
		if govalidator.IsIn(account, org.Members...) {
			return true, nil
		}
	}

	return false, nil
}

func (s *organizationStore) List(ctx context.Context, tx *db.DB, fromID int64, limit int) ([]*core.Organization, error) {
	var orgs []*core.Organization
	if err := s.read(tx).Where("id > ?", fromID).Order("id").Limit(limit).Find(&orgs).Error; err != nil {
		return nil, err
	}

	return orgs, nil
}
