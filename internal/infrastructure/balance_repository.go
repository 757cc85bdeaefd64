package infrastructure

import (
	"context"

	"MeuBolso/internal/domain/balance"
	"MeuBolso/internal/domain/transaction"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BalanceRepository concentra as consultas do recálculo de saldo. Todas as
// operações recebem o *gorm.DB transacional da escrita que disparou o
// recálculo.
type BalanceRepository struct {
	DB *gorm.DB
}

var _ balance.Repository = (*BalanceRepository)(nil)

func (r *BalanceRepository) GetAccountsWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) ([]*balance.AccountBalance, error) {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Id             string          `gorm:"column:id"`
		InitialBalance decimal.Decimal `gorm:"column:initial_balance"`
	}
	err = db.WithContext(ctx).Table("accounts").
		Select("id", "initial_balance").
		Where("user_id = ?", userID.String()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]*balance.AccountBalance, 0, len(rows))
	for _, row := range rows {
		id, err := pkg.ParseULID(row.Id)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, &balance.AccountBalance{
			Id:             id,
			InitialBalance: row.InitialBalance,
		})
	}
	return accounts, nil
}

func (r *BalanceRepository) SumAmountsWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID) (decimal.Decimal, decimal.Decimal, error) {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	var sums struct {
		Income  decimal.Decimal `gorm:"column:income"`
		Expense decimal.Decimal `gorm:"column:expense"`
	}
	err = db.WithContext(ctx).Table("transactions").
		Select(
			"COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income, "+
				"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense").
		Where("account_id = ? AND flag <> ?", accountID.String(), string(transaction.FlagInitialBalance)).
		Scan(&sums).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return sums.Income, sums.Expense, nil
}

func (r *BalanceRepository) UpdateAccountBalanceWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID, amount decimal.Decimal) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("accounts").
		Where("id = ?", accountID.String()).
		Update("current_balance", amount).Error
}

func (r *BalanceRepository) UpdateUserBalanceWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, amount decimal.Decimal) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("users").
		Where("id = ?", userID.String()).
		Update("balance", amount).Error
}
