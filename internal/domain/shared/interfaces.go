package shared

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type UserChecker interface {
	Exists(ctx context.Context, userID ulid.ULID) error
}

type UserGetter interface {
	UserChecker
	GetByID(ctx context.Context, userID ulid.ULID) (interface{}, error)
}

// BalanceRecomputer recalcula os caches de saldo do usuário dentro da
// transação de banco corrente (tx é um *gorm.DB aberto pelo chamador).
type BalanceRecomputer interface {
	RecomputeUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) error
}

// TxRunner executa fn dentro de uma transação de banco; o valor passado a fn
// deve ser repassado aos repositórios *WithTx.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(tx interface{}) error) error
}
