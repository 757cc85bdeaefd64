package user

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	CreateWithTx(ctx context.Context, tx interface{}, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateBalanceWithTx(ctx context.Context, tx interface{}, id ulid.ULID, balance decimal.Decimal) error
}
