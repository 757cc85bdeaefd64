package fx

import (
	"MeuBolso/config"
	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/domain/accountcategory"
	"MeuBolso/internal/domain/auth"
	"MeuBolso/internal/domain/balance"
	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/domain/dashboard"
	"MeuBolso/internal/domain/debt"
	"MeuBolso/internal/domain/importer"
	"MeuBolso/internal/domain/setting"
	"MeuBolso/internal/domain/shared"
	"MeuBolso/internal/domain/tag"
	"MeuBolso/internal/domain/transaction"
	"MeuBolso/internal/domain/transfer"
	"MeuBolso/internal/domain/user"
	"MeuBolso/internal/infrastructure"
	"MeuBolso/internal/logger"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio.
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newUserServiceAdapter,
		newUserCheckerService,
		newBalanceService,
		newAccountCategoryService,
		newAccountService,
		newCategoryService,
		newTagService,
		newTransactionService,
		newTransferService,
		newDebtService,
		newImportService,
		newSettingService,
		newDashboardService,
		newOAuthProvider,
		newAuthService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserServiceAdapter(userSvc *user.Service) *user.UserServiceAdapter {
	return user.NewUserServiceAdapter(userSvc)
}

func newUserCheckerService(adapter *user.UserServiceAdapter) *shared.UserCheckerService {
	return shared.NewUserCheckerService(adapter)
}

func newBalanceService(repo *infrastructure.BalanceRepository) *balance.Service {
	return balance.NewService(repo)
}

func newAccountCategoryService(
	repo *infrastructure.AccountCategoryRepository,
	userChecker *shared.UserCheckerService,
) *accountcategory.Service {
	return accountcategory.NewService(repo, userChecker)
}

func newAccountService(
	repo *infrastructure.AccountRepository,
	categorySvc *accountcategory.Service,
	txRunner *infrastructure.TxRunner,
	balanceSvc *balance.Service,
	userChecker *shared.UserCheckerService,
) *account.Service {
	return account.NewService(repo, categorySvc, txRunner, balanceSvc, userChecker)
}

func newCategoryService(
	repo *infrastructure.TransactionCategoryRepository,
	userChecker *shared.UserCheckerService,
) *category.Service {
	return category.NewService(repo, userChecker)
}

func newTagService(
	repo *infrastructure.TagRepository,
	userChecker *shared.UserCheckerService,
) *tag.Service {
	return tag.NewService(repo, userChecker)
}

func newTransactionService(
	repo *infrastructure.TransactionRepository,
	categorySvc *category.Service,
	accountSvc *account.Service,
	tagSvc *tag.Service,
	txRunner *infrastructure.TxRunner,
	balanceSvc *balance.Service,
	userChecker *shared.UserCheckerService,
) *transaction.Service {
	return transaction.NewService(repo, categorySvc, accountSvc, tagSvc, txRunner, balanceSvc, userChecker)
}

func newTransferService(
	repo *infrastructure.TransferRepository,
	accountSvc *account.Service,
	categorySvc *category.Service,
	transactionSvc *transaction.Service,
	txRunner *infrastructure.TxRunner,
	balanceSvc *balance.Service,
	userChecker *shared.UserCheckerService,
) *transfer.Service {
	return transfer.NewService(repo, accountSvc, categorySvc, transactionSvc, txRunner, balanceSvc, userChecker)
}

func newDebtService(
	repo *infrastructure.DebtRepository,
	accountSvc *account.Service,
	categorySvc *category.Service,
	transactionSvc *transaction.Service,
	txRunner *infrastructure.TxRunner,
	balanceSvc *balance.Service,
	userChecker *shared.UserCheckerService,
) *debt.Service {
	return debt.NewService(repo, accountSvc, categorySvc, transactionSvc, txRunner, balanceSvc, userChecker)
}

func newImportService(
	repo *infrastructure.ImportRepository,
	accountSvc *account.Service,
	categorySvc *category.Service,
	transactionSvc *transaction.Service,
	txRunner *infrastructure.TxRunner,
	balanceSvc *balance.Service,
	cfg *config.Config,
	userChecker *shared.UserCheckerService,
) *importer.Service {
	return importer.NewService(repo, accountSvc, categorySvc, transactionSvc, txRunner, balanceSvc, cfg, userChecker)
}

func newSettingService(
	repo *infrastructure.SettingRepository,
	userChecker *shared.UserCheckerService,
) *setting.Service {
	return setting.NewService(repo, userChecker)
}

func newDashboardService(
	repo *infrastructure.DashboardRepository,
	userChecker *shared.UserCheckerService,
) *dashboard.Service {
	return dashboard.NewService(repo, userChecker)
}

// newOAuthProvider devolve provider nulo quando o login com Google está
// desabilitado; o serviço de auth responde 401 nas rotas do Google nesse caso.
func newOAuthProvider(cfg *config.Config) (auth.OAuthProvider, error) {
	if !cfg.GoogleOAuth.Enabled {
		logger.Info().Msg("login com Google desabilitado")
		return nil, nil
	}
	return auth.NewGoogleOAuthProvider(cfg.GoogleOAuth)
}

func newAuthService(
	userSvc *user.Service,
	accountCategorySvc *accountcategory.Service,
	categorySvc *category.Service,
	oauthProvider auth.OAuthProvider,
	txRunner *infrastructure.TxRunner,
) *auth.Service {
	return auth.NewService(userSvc, accountCategorySvc, categorySvc, oauthProvider, txRunner)
}
