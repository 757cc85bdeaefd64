package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"MeuBolso/internal/domain/transaction"
	appErrors "MeuBolso/internal/errors"
	"MeuBolso/internal/pkg"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Layout posicional das planilhas aceitas. As colunas são endereçadas por
// letra e convertidas para índice pelo helper de planilha.
const (
	columnCategory = "A"
	columnAccount  = "B"
	columnAmount   = "C"
	columnDate     = "D"
	columnNote     = "E"
	columnSign     = "F"
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02-01-2006",
}

// Row é uma linha da planilha já validada e classificada.
type Row struct {
	Category string
	Account  string
	Amount   decimal.Decimal
	Date     time.Time
	Note     string
	Type     transaction.Types
	Kind     RowKind
}

// Parse lê o arquivo enviado e devolve as linhas normalizadas. O formato é
// decidido pela extensão: CSV por encoding/csv, XLS/XLSX por excelize.
func Parse(fileName string, r io.Reader) ([]*Row, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return parseCSV(r)
	case ".xls", ".xlsx":
		return parseExcel(r)
	default:
		return nil, appErrors.NewValidationError("file", "formato não suportado, use CSV, XLS ou XLSX")
	}
}

func parseCSV(r io.Reader) ([]*Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, appErrors.NewValidationError("file", "arquivo CSV inválido")
	}
	return buildRows(records)
}

func parseExcel(r io.Reader) ([]*Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, appErrors.NewValidationError("file", "arquivo de planilha inválido")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, appErrors.NewValidationError("file", "planilha sem abas")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, appErrors.NewValidationError("file", "não foi possível ler a planilha")
	}
	return buildRows(records)
}

func buildRows(records [][]string) ([]*Row, error) {
	rows := make([]*Row, 0, len(records))

	for i, record := range records {
		category := pkg.CellAt(record, columnCategory)
		account := pkg.CellAt(record, columnAccount)
		rawAmount := pkg.CellAt(record, columnAmount)
		rawDate := pkg.CellAt(record, columnDate)
		note := pkg.CellAt(record, columnNote)
		sign := pkg.CellAt(record, columnSign)

		if category == "" && account == "" && rawAmount == "" {
			continue
		}

		// A primeira linha pode ser um cabeçalho.
		if i == 0 {
			if _, err := parseAmount(rawAmount); err != nil {
				continue
			}
		}

		amount, err := parseAmount(rawAmount)
		if err != nil {
			return nil, rowError(i, "valor inválido")
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, rowError(i, "valor deve ser maior que zero")
		}

		date, err := parseDate(rawDate)
		if err != nil {
			return nil, rowError(i, "data inválida")
		}

		if category == "" {
			return nil, rowError(i, "categoria é obrigatória")
		}
		if account == "" {
			return nil, rowError(i, "conta é obrigatória")
		}

		kind := ClassifyCategory(category)
		rows = append(rows, &Row{
			Category: category,
			Account:  account,
			Amount:   amount,
			Date:     date,
			Note:     note,
			Type:     rowType(kind, sign),
			Kind:     kind,
		})
	}

	if len(rows) == 0 {
		return nil, appErrors.NewValidationError("file", "nenhuma linha válida encontrada")
	}
	return rows, nil
}

// rowType resolve o tipo da transação. Linhas especiais têm tipo fixo pela
// classificação; linhas normais seguem a coluna de sinal.
func rowType(kind RowKind, sign string) transaction.Types {
	switch kind {
	case RowInitialBalance, RowTransferIn, RowDebtCollect:
		return transaction.Income
	case RowTransferOut, RowDebtPayment:
		return transaction.Expense
	}

	switch strings.ToLower(sign) {
	case "+", "i", "in", "income", "receita", "entrada", "pemasukan":
		return transaction.Income
	default:
		return transaction.Expense
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	// Vírgula decimal é aceita quando não há ponto na célula.
	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}
	return decimal.NewFromString(cleaned)
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %s", raw)
}

func rowError(index int, message string) error {
	return appErrors.NewValidationError(fmt.Sprintf("row_%d", index+1), message)
}
