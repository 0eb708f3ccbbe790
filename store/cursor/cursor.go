package cursor

import (
	"context"

	"dao/core"

	"github.com/fox-one/pkg/property"
	"github.com/spf13/cast"
)

type cursorStore struct {
	property property.Store
}

// New cursors kept in the property store
func New(property property.Store) core.CursorStore {
	return &cursorStore{property: property}
}

func (s *cursorStore) Cursor(ctx context.Context, key string) (int64, error) {
	v, err := s.property.Get(ctx, key)
	if err != nil {
		return 0, err
	}

	return cast.ToInt64(v.String()), nil
}

func (s *cursorStore) SaveCursor(ctx context.Context, key string, cursor int64) error {
	return s.property.Save(ctx, key, cursor)
}
