package fx

import (
	"context"

	"MeuBolso/config"
	"MeuBolso/internal/logger"
	"MeuBolso/internal/middleware"
	"MeuBolso/internal/routes"

	docs "MeuBolso/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP.
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	authRateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := router.Group("/api/v1")
	public.Use(middleware.RateLimit(authRateLimiter))
	{
		public.POST("/auth/register", handler.Registration)
		public.POST("/auth/login", handler.Authenticate)
		public.POST("/auth/google", handler.GoogleAuth)
		public.GET("/auth/google/url", handler.GoogleAuthURL)
		public.GET("/auth/google/callback", handler.GoogleCallback)
	}

	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimitByUser(middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)))
	{
		private.POST("/auth/logout", handler.Logout)
		private.POST("/auth/refresh", handler.RefreshToken)
		private.GET("/auth/me", handler.Me)

		private.GET("/dashboard", handler.GetDashboard)

		users := private.Group("/users")
		{
			users.PATCH("/me", handler.UpdateUserName)
			users.PATCH("/me/password", handler.UpdateUserPassword)
			users.DELETE("/me", handler.DeleteUser)
		}

		accountCategories := private.Group("/account-categories")
		{
			accountCategories.POST("", handler.CreateAccountCategory)
			accountCategories.GET("", handler.ListAccountCategories)
			accountCategories.GET("/:id", handler.GetAccountCategory)
			accountCategories.PATCH("/:id", handler.UpdateAccountCategory)
			accountCategories.DELETE("/:id", handler.DeleteAccountCategory)
		}

		accounts := private.Group("/accounts")
		{
			accounts.POST("", handler.CreateAccount)
			accounts.GET("", handler.ListAccounts)
			accounts.GET("/balance", handler.GetTotalBalance)
			accounts.GET("/:id", handler.GetAccount)
			accounts.PATCH("/:id", handler.UpdateAccount)
			accounts.DELETE("/:id", handler.DeleteAccount)
		}

		categories := private.Group("/transaction-categories")
		{
			categories.POST("", handler.CreateCategory)
			categories.GET("", handler.ListCategories)
			categories.GET("/:id", handler.GetCategory)
			categories.PATCH("/:id", handler.UpdateCategory)
			categories.DELETE("/:id", handler.DeleteCategory)
		}

		tags := private.Group("/tags")
		{
			tags.POST("", handler.CreateTag)
			tags.GET("", handler.ListTags)
			tags.GET("/:id", handler.GetTag)
			tags.PATCH("/:id", handler.UpdateTag)
			tags.DELETE("/:id", handler.DeleteTag)
		}

		transactions := private.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.POST("/bulk", handler.CreateTransactionsBulk)
			transactions.GET("", handler.GetTransactions)
			transactions.GET("/:id", handler.GetTransaction)
			transactions.PATCH("/:id", handler.UpdateTransaction)
			transactions.DELETE("/:id", handler.DeleteTransaction)
		}

		transfers := private.Group("/transfers")
		{
			transfers.POST("", handler.CreateTransfer)
			transfers.GET("", handler.ListTransfers)
			transfers.GET("/:id", handler.GetTransfer)
			transfers.DELETE("/:id", handler.DeleteTransfer)
		}

		debts := private.Group("/debts")
		{
			debts.POST("", handler.CreateDebt)
			debts.GET("", handler.ListDebts)
			debts.GET("/:id", handler.GetDebt)
			debts.PATCH("/:id", handler.UpdateDebt)
			debts.DELETE("/:id", handler.DeleteDebt)
			debts.POST("/:id/settlements", handler.SettleDebt)
			debts.GET("/:id/settlements", handler.ListDebtSettlements)
		}

		imports := private.Group("/imports")
		{
			imports.POST("", handler.CreateImport)
			imports.GET("", handler.ListImports)
			imports.GET("/:id", handler.GetImport)
			imports.DELETE("/:id", handler.DeleteImport)
		}

		settings := private.Group("/settings")
		{
			settings.GET("", handler.ListSettings)
			settings.PUT("", handler.UpsertSettings)
			settings.GET("/:key", handler.GetSetting)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
