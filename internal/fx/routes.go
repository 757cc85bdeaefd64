package fx

import (
	"MeuBolso/config"
	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/domain/accountcategory"
	"MeuBolso/internal/domain/auth"
	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/domain/dashboard"
	"MeuBolso/internal/domain/debt"
	"MeuBolso/internal/domain/importer"
	"MeuBolso/internal/domain/setting"
	"MeuBolso/internal/domain/tag"
	"MeuBolso/internal/domain/transaction"
	"MeuBolso/internal/domain/transfer"
	"MeuBolso/internal/domain/user"
	"MeuBolso/internal/middleware"
	"MeuBolso/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece o handler e os rate limiters.
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newAuthRateLimiter,
	),
)

func newHandler(
	jwtSvc *middleware.JwtService,
	authSvc *auth.Service,
	userSvc *user.Service,
	accountCategorySvc *accountcategory.Service,
	accountSvc *account.Service,
	categorySvc *category.Service,
	tagSvc *tag.Service,
	transactionSvc *transaction.Service,
	transferSvc *transfer.Service,
	debtSvc *debt.Service,
	importSvc *importer.Service,
	settingSvc *setting.Service,
	dashboardSvc *dashboard.Service,
) *routes.Handler {
	return &routes.Handler{
		JwtService:             jwtSvc,
		AuthService:            authSvc,
		UserService:            userSvc,
		AccountCategoryService: accountCategorySvc,
		AccountService:         accountSvc,
		CategoryService:        categorySvc,
		TagService:             tagSvc,
		TransactionService:     transactionSvc,
		TransferService:        transferSvc,
		DebtService:            debtSvc,
		ImportService:          importSvc,
		SettingService:         settingSvc,
		DashboardService:       dashboardSvc,
	}
}

func newAuthRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
}
