package dashboard

import (
	"context"
	"time"

	"MeuBolso/internal/domain/shared"
	appErrors "MeuBolso/internal/errors"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) GetDashboard(ctx context.Context, userID ulid.ULID, accountID *ulid.ULID, month, year int) (*DashboardResponse, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	if month <= 0 || month > 12 {
		month = int(time.Now().Month())
	}
	if year <= 0 {
		year = time.Now().Year()
	}

	summary, err := s.Repository.GetFinancialSummary(ctx, userID, accountID, month, year)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	monthlyTrend, err := s.Repository.GetMonthlyTrend(ctx, userID, accountID, 6)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	categoryExpenses, err := s.Repository.GetExpensesByCategory(ctx, userID, accountID, month, year)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	recentTransactions, err := s.Repository.GetRecentTransactions(ctx, userID, accountID, 5)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	accounts, err := s.Repository.GetAccountsSummary(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &DashboardResponse{
		Summary:            summary,
		MonthlyTrend:       monthlyTrend,
		CategoryExpenses:   categoryExpenses,
		RecentTransactions: recentTransactions,
		Accounts:           accounts,
	}, nil
}
