package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary resume o mês corrente: saldo total do usuário e os
// totais de receitas e despesas do período.
type FinancialSummary struct {
	Balance      decimal.Decimal `json:"balance"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
}

type MonthlyTrendItem struct {
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type CategoryExpense struct {
	CategoryId   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

type TransactionSummary struct {
	Id           string          `json:"id"`
	AccountName  string          `json:"account_name"`
	CategoryName string          `json:"category_name"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Note         string          `json:"note"`
}

type AccountSummary struct {
	Id             string          `json:"id"`
	Name           string          `json:"name"`
	CategoryName   string          `json:"category_name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

type DashboardResponse struct {
	Summary            *FinancialSummary     `json:"summary"`
	MonthlyTrend       []*MonthlyTrendItem   `json:"monthly_trend"`
	CategoryExpenses   []*CategoryExpense    `json:"category_expenses"`
	RecentTransactions []*TransactionSummary `json:"recent_transactions"`
	Accounts           []*AccountSummary     `json:"accounts"`
}
