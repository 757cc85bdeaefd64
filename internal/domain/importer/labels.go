package importer

import "strings"

// RowKind classifica uma linha da planilha pelo nome da categoria. As listas
// de rótulos cobrem os nomes em português e os nomes usados pelas planilhas
// exportadas do aplicativo original.
type RowKind int

const (
	RowNormal RowKind = iota
	RowInitialBalance
	RowTransferIn
	RowTransferOut
	RowDebtPayment
	RowDebtCollect
)

var (
	initialBalanceLabels = []string{"saldo inicial", "saldo awal"}
	transferInLabels     = []string{"transferência recebida", "transfer masuk"}
	transferOutLabels    = []string{"transferência enviada", "transfer keluar"}
	debtPaymentLabels    = []string{"pagamento de dívida", "bayar hutang"}
	debtCollectLabels    = []string{"recebimento de dívida", "tagih hutang"}
)

// ClassifyCategory compara o nome da categoria, sem distinção de maiúsculas,
// com as listas de rótulos especiais.
func ClassifyCategory(name string) RowKind {
	normalized := strings.ToLower(strings.TrimSpace(name))

	switch {
	case matches(normalized, initialBalanceLabels):
		return RowInitialBalance
	case matches(normalized, transferInLabels):
		return RowTransferIn
	case matches(normalized, transferOutLabels):
		return RowTransferOut
	case matches(normalized, debtPaymentLabels):
		return RowDebtPayment
	case matches(normalized, debtCollectLabels):
		return RowDebtCollect
	}
	return RowNormal
}

func matches(normalized string, labels []string) bool {
	for _, label := range labels {
		if normalized == label {
			return true
		}
	}
	return false
}
