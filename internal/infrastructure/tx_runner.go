package infrastructure

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// TxRunner abre uma transação gorm e entrega o *gorm.DB transacional para a
// função do serviço. Erro devolvido por fn desfaz a transação inteira,
// inclusive os caches de saldo recalculados dentro dela.
type TxRunner struct {
	DB *gorm.DB
}

func (r *TxRunner) RunInTransaction(ctx context.Context, fn func(tx interface{}) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}

// gormTx resolve o *gorm.DB transacional passado pelos serviços, caindo no
// handle base quando o chamador não está em transação.
func gormTx(tx interface{}, fallback *gorm.DB) (*gorm.DB, error) {
	if tx == nil {
		return fallback, nil
	}
	db, ok := tx.(*gorm.DB)
	if !ok {
		return nil, errors.New("tx is not a *gorm.DB")
	}
	return db, nil
}
