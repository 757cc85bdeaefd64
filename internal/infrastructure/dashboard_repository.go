package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/dashboard"
	"MeuBolso/internal/domain/transaction"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

var _ dashboard.Repository = (*DashboardRepository)(nil)

// monthWindow devolve o primeiro instante do mês e do mês seguinte.
func monthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (r *DashboardRepository) GetFinancialSummary(ctx context.Context, userID ulid.ULID, accountID *ulid.ULID, month, year int) (*dashboard.FinancialSummary, error) {
	var userBalance decimal.Decimal
	err := r.DB.WithContext(ctx).Table("users").
		Select("balance").
		Where("id = ?", userID.String()).
		Scan(&userBalance).Error
	if err != nil {
		return nil, err
	}

	start, end := monthWindow(month, year)
	query := r.DB.WithContext(ctx).Table("transactions").
		Where("user_id = ? AND date >= ? AND date < ? AND flag <> ?",
			userID.String(), start, end, string(transaction.FlagInitialBalance))
	if accountID != nil {
		query = query.Where("account_id = ?", accountID.String())
	}

	var sums struct {
		Income  decimal.Decimal `gorm:"column:income"`
		Expense decimal.Decimal `gorm:"column:expense"`
	}
	err = query.Select(
		"COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income, " +
			"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	return &dashboard.FinancialSummary{
		Balance:      userBalance,
		TotalIncome:  sums.Income,
		TotalExpense: sums.Expense,
		Month:        month,
		Year:         year,
	}, nil
}

func (r *DashboardRepository) GetMonthlyTrend(ctx context.Context, userID ulid.ULID, accountID *ulid.ULID, months int) ([]*dashboard.MonthlyTrendItem, error) {
	now := time.Now().UTC()
	items := make([]*dashboard.MonthlyTrendItem, 0, months)

	for i := months - 1; i >= 0; i-- {
		ref := now.AddDate(0, -i, 0)
		start, end := monthWindow(int(ref.Month()), ref.Year())

		query := r.DB.WithContext(ctx).Table("transactions").
			Where("user_id = ? AND date >= ? AND date < ? AND flag <> ?",
				userID.String(), start, end, string(transaction.FlagInitialBalance))
		if accountID != nil {
			query = query.Where("account_id = ?", accountID.String())
		}

		var sums struct {
			Income  decimal.Decimal `gorm:"column:income"`
			Expense decimal.Decimal `gorm:"column:expense"`
		}
		err := query.Select(
			"COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income, " +
				"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense").
			Scan(&sums).Error
		if err != nil {
			return nil, err
		}

		items = append(items, &dashboard.MonthlyTrendItem{
			Month:   int(ref.Month()),
			Year:    ref.Year(),
			Income:  sums.Income,
			Expense: sums.Expense,
		})
	}
	return items, nil
}

func (r *DashboardRepository) GetExpensesByCategory(ctx context.Context, userID ulid.ULID, accountID *ulid.ULID, month, year int) ([]*dashboard.CategoryExpense, error) {
	start, end := monthWindow(month, year)

	query := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.transaction_category_id AS category_id, c.name AS category_name, COALESCE(SUM(t.amount), 0) AS total").
		Joins("JOIN transaction_categories c ON c.id = t.transaction_category_id").
		Where("t.user_id = ? AND t.type = 'expense' AND t.date >= ? AND t.date < ? AND t.flag <> ?",
			userID.String(), start, end, string(transaction.FlagInitialBalance)).
		Group("t.transaction_category_id, c.name").
		Order("total DESC")
	if accountID != nil {
		query = query.Where("t.account_id = ?", accountID.String())
	}

	var rows []*dashboard.CategoryExpense
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DashboardRepository) GetRecentTransactions(ctx context.Context, userID ulid.ULID, accountID *ulid.ULID, limit int) ([]*dashboard.TransactionSummary, error) {
	query := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.id, a.name AS account_name, c.name AS category_name, t.type, t.amount, t.date, t.note").
		Joins("JOIN accounts a ON a.id = t.account_id").
		Joins("JOIN transaction_categories c ON c.id = t.transaction_category_id").
		Where("t.user_id = ?", userID.String()).
		Order("t.date DESC, t.created_at DESC").
		Limit(limit)
	if accountID != nil {
		query = query.Where("t.account_id = ?", accountID.String())
	}

	var rows []*dashboard.TransactionSummary
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DashboardRepository) GetAccountsSummary(ctx context.Context, userID ulid.ULID) ([]*dashboard.AccountSummary, error) {
	var rows []*dashboard.AccountSummary
	err := r.DB.WithContext(ctx).Table("accounts a").
		Select("a.id, a.name, c.name AS category_name, a.current_balance").
		Joins("JOIN account_categories c ON c.id = a.account_category_id").
		Where("a.user_id = ?", userID.String()).
		Order("a.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
