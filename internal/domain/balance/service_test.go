package balance_test

import (
	"context"
	"errors"
	"testing"

	"MeuBolso/internal/domain/balance"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type fakeBalanceRepository struct {
	accounts        []*balance.AccountBalance
	sums            map[ulid.ULID][2]decimal.Decimal
	accountBalances map[ulid.ULID]decimal.Decimal
	userBalance     decimal.Decimal
	userUpdates     int
	sumErr          error
}

func (f *fakeBalanceRepository) GetAccountsWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) ([]*balance.AccountBalance, error) {
	return f.accounts, nil
}

func (f *fakeBalanceRepository) SumAmountsWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID) (decimal.Decimal, decimal.Decimal, error) {
	if f.sumErr != nil {
		return decimal.Zero, decimal.Zero, f.sumErr
	}
	pair := f.sums[accountID]
	return pair[0], pair[1], nil
}

func (f *fakeBalanceRepository) UpdateAccountBalanceWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID, value decimal.Decimal) error {
	if f.accountBalances == nil {
		f.accountBalances = make(map[ulid.ULID]decimal.Decimal)
	}
	f.accountBalances[accountID] = value
	return nil
}

func (f *fakeBalanceRepository) UpdateUserBalanceWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, value decimal.Decimal) error {
	f.userBalance = value
	f.userUpdates++
	return nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRecomputeUserWithTx(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	checking := ulid.Make()
	wallet := ulid.Make()

	repo := &fakeBalanceRepository{
		accounts: []*balance.AccountBalance{
			{Id: checking, InitialBalance: dec("100.00")},
			{Id: wallet, InitialBalance: dec("-25.50")},
		},
		sums: map[ulid.ULID][2]decimal.Decimal{
			checking: {dec("300.00"), dec("120.75")},
			wallet:   {dec("0"), dec("10.00")},
		},
	}

	svc := balance.NewService(repo)
	if err := svc.RecomputeUserWithTx(context.Background(), nil, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.accountBalances[checking]; !got.Equal(dec("279.25")) {
		t.Fatalf("expected checking balance 279.25, got %s", got)
	}
	if got := repo.accountBalances[wallet]; !got.Equal(dec("-35.50")) {
		t.Fatalf("expected wallet balance -35.50, got %s", got)
	}
	if !repo.userBalance.Equal(dec("243.75")) {
		t.Fatalf("expected user balance 243.75, got %s", repo.userBalance)
	}
	if repo.userUpdates != 1 {
		t.Fatalf("expected one user balance update, got %d", repo.userUpdates)
	}
}

func TestRecomputeUserWithTxNoAccounts(t *testing.T) {
	t.Parallel()

	repo := &fakeBalanceRepository{}
	svc := balance.NewService(repo)

	if err := svc.RecomputeUserWithTx(context.Background(), nil, ulid.Make()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.userBalance.Equal(decimal.Zero) {
		t.Fatalf("expected zero user balance, got %s", repo.userBalance)
	}
}

func TestRecomputeUserWithTxPropagatesErrors(t *testing.T) {
	t.Parallel()

	repo := &fakeBalanceRepository{
		accounts: []*balance.AccountBalance{{Id: ulid.Make()}},
		sumErr:   errors.New("conexão perdida"),
	}
	svc := balance.NewService(repo)

	if err := svc.RecomputeUserWithTx(context.Background(), nil, ulid.Make()); err == nil {
		t.Fatal("expected error")
	}
	if repo.userUpdates != 0 {
		t.Fatalf("user balance should not be written after failure, got %d updates", repo.userUpdates)
	}
}
