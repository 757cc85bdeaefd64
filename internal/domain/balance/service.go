package balance

import (
	"context"

	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/logger"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Service recalcula os saldos em cache a partir do razão de transações.
// O recálculo roda sempre dentro da transação de banco da escrita que o
// disparou, então um rollback desfaz também os caches.
type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

// RecomputeUserWithTx recalcula o current_balance de cada conta do usuário
// (initial_balance + receitas - despesas) e grava a soma no saldo do usuário.
func (s *Service) RecomputeUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) error {
	accounts, err := s.Repository.GetAccountsWithTx(ctx, tx, userID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	total := decimal.Zero
	for _, acc := range accounts {
		income, expense, err := s.Repository.SumAmountsWithTx(ctx, tx, acc.Id)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}

		current := acc.InitialBalance.Add(income).Sub(expense)
		if err := s.Repository.UpdateAccountBalanceWithTx(ctx, tx, acc.Id, current); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		total = total.Add(current)
	}

	if err := s.Repository.UpdateUserBalanceWithTx(ctx, tx, userID, total); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	logger.Debug().
		Str("user_id", userID.String()).
		Int("accounts", len(accounts)).
		Str("balance", total.String()).
		Msg("saldos recalculados")

	return nil
}
