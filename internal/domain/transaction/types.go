package transaction

type Types string

const (
	Income  Types = "income"
	Expense Types = "expense"
)

func (t Types) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	}
	return false
}

// Flag registra a procedência da transação. Tudo que não for Normal é gerado
// pelo sistema (transferência, dívida, saldo inicial) e fica imutável pelas
// rotas comuns de transação.
type Flag string

const (
	FlagNormal         Flag = "normal"
	FlagTransferIn     Flag = "transfer_in"
	FlagTransferOut    Flag = "transfer_out"
	FlagDebtPayment    Flag = "debt_payment"
	FlagDebtCollect    Flag = "debt_collect"
	FlagInitialBalance Flag = "initial_balance"
)

func (f Flag) IsValid() bool {
	switch f {
	case FlagNormal, FlagTransferIn, FlagTransferOut, FlagDebtPayment, FlagDebtCollect, FlagInitialBalance:
		return true
	}
	return false
}

func (f Flag) IsSystem() bool {
	return f.IsValid() && f != FlagNormal
}

// Valores de source_type para o vínculo polimórfico com a origem da transação.
const (
	SourceTransfer = "transfer"
	SourceDebt     = "debt"
)
