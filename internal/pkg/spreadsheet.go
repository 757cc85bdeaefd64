package pkg

import (
	"errors"
	"strings"
)

// ColumnIndex converte uma letra de coluna de planilha ("A", "B", ..., "AA")
// para o índice zero-based correspondente.
func ColumnIndex(column string) (int, error) {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return 0, errors.New("column letter cannot be empty")
	}

	index := 0
	for _, r := range column {
		if r < 'A' || r > 'Z' {
			return 0, errors.New("invalid column letter: " + column)
		}
		index = index*26 + int(r-'A') + 1
	}
	return index - 1, nil
}

// CellAt devolve o valor na coluna indicada, ou "" quando a linha é curta.
func CellAt(row []string, column string) string {
	idx, err := ColumnIndex(column)
	if err != nil || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
