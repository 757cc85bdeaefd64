package fx

import (
	"MeuBolso/config"
	"MeuBolso/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newTxRunner,
		newUserRepository,
		newAccountCategoryRepository,
		newAccountRepository,
		newTransactionCategoryRepository,
		newTransactionRepository,
		newTagRepository,
		newTransferRepository,
		newDebtRepository,
		newImportRepository,
		newSettingRepository,
		newBalanceRepository,
		newDashboardRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newTxRunner(db *gorm.DB) *infrastructure.TxRunner {
	return &infrastructure.TxRunner{DB: db}
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newAccountCategoryRepository(db *gorm.DB) *infrastructure.AccountCategoryRepository {
	return &infrastructure.AccountCategoryRepository{DB: db}
}

func newAccountRepository(db *gorm.DB) *infrastructure.AccountRepository {
	return &infrastructure.AccountRepository{DB: db}
}

func newTransactionCategoryRepository(db *gorm.DB) *infrastructure.TransactionCategoryRepository {
	return &infrastructure.TransactionCategoryRepository{DB: db}
}

func newTransactionRepository(db *gorm.DB) *infrastructure.TransactionRepository {
	return &infrastructure.TransactionRepository{DB: db}
}

func newTagRepository(db *gorm.DB) *infrastructure.TagRepository {
	return &infrastructure.TagRepository{DB: db}
}

func newTransferRepository(db *gorm.DB) *infrastructure.TransferRepository {
	return &infrastructure.TransferRepository{DB: db}
}

func newDebtRepository(db *gorm.DB) *infrastructure.DebtRepository {
	return &infrastructure.DebtRepository{DB: db}
}

func newImportRepository(db *gorm.DB) *infrastructure.ImportRepository {
	return &infrastructure.ImportRepository{DB: db}
}

func newSettingRepository(db *gorm.DB) *infrastructure.SettingRepository {
	return &infrastructure.SettingRepository{DB: db}
}

func newBalanceRepository(db *gorm.DB) *infrastructure.BalanceRepository {
	return &infrastructure.BalanceRepository{DB: db}
}

func newDashboardRepository(db *gorm.DB) *infrastructure.DashboardRepository {
	return &infrastructure.DashboardRepository{DB: db}
}
