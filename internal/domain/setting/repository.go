package setting

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Upsert(ctx context.Context, s *Setting) error
	GetByKey(ctx context.Context, userID ulid.ULID, key string) (*Setting, error)
	GetAll(ctx context.Context, userID ulid.ULID) ([]*Setting, error)
}
