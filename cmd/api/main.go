package main

import (
	appfx "MeuBolso/internal/fx"

	"go.uber.org/fx"
)

// @title MeuBolso API
// @version 1.0
// @description API de controle financeiro pessoal: contas, transações, transferências, dívidas e importação de planilhas.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
