package organization

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dao/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wrap the store with a read cache. Only reads outside a
// transaction (nil tx) are served from the cache.
//
// A write drops the cached entry and remembers the version it wrote. Until
// a read returns that version, which happens once the write's transaction
// committed, loaded rows are returned without being cached.
func Cache(store core.OrganizationStore, size int, exp time.Duration) core.OrganizationStore {
	builder := gcache.New(size).LRU()
	if exp > 0 {
		builder = builder.Expiration(exp)
	}

	return &cacheOrganizationStore{
		OrganizationStore: store,
		cache:             builder.Build(),
		sf:                &singleflight.Group{},
		pending:           map[string]int64{},
	}
}

type cacheOrganizationStore struct {
	core.OrganizationStore
	cache gcache.Cache
	sf    *singleflight.Group

	mu      sync.Mutex
	pending map[string]int64
}

func (s *cacheOrganizationStore) Create(ctx context.Context, tx *db.DB, org *core.Organization) error {
	if err := s.OrganizationStore.Create(ctx, tx, org); err != nil {
		return err
	}

	s.written(org)
	return nil
}

func (s *cacheOrganizationStore) Update(ctx context.Context, tx *db.DB, org *core.Organization) error {
	if err := s.OrganizationStore.Update(ctx, tx, org); err != nil {
		return err
	}

	s.written(org)
	return nil
}

func (s *cacheOrganizationStore) Find(ctx context.Context, tx *db.DB, address string) (*core.Organization, error) {
	if tx != nil {
		return s.OrganizationStore.Find(ctx, tx, address)
	}

	key := s.addressKey(address)
	if v, err := s.cache.Get(key); err == nil {
		if org, ok := v.(*core.Organization); ok {
			return org, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		org, err := s.OrganizationStore.Find(ctx, nil, address)
		if err != nil {
			return nil, err
		}

		if org.ID > 0 {
			s.loaded(key, org)
		}

		return org, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Organization), nil
}

func (s *cacheOrganizationStore) written(org *core.Organization) {
	key := s.addressKey(org.Address)

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.pending[key]; !ok || v < org.Version {
		s.pending[key] = org.Version
	}

	s.cache.Remove(key)
}

func (s *cacheOrganizationStore) loaded(key string, org *core.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.pending[key]; ok {
		// the write is not visible yet, or was rolled back
		if org.Version < v {
			return
		}

		delete(s.pending, key)
	}

	_ = s.cache.Set(key, org)
}

func (s *cacheOrganizationStore) addressKey(address string) string {
	return fmt.Sprintf("organization:address:%s", address)
}
