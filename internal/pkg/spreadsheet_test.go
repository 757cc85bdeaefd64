package pkg_test

import (
	"testing"

	"MeuBolso/internal/pkg"
)

func TestColumnIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		column   string
		expected int
	}{
		{column: "A", expected: 0},
		{column: "b", expected: 1},
		{column: " F ", expected: 5},
		{column: "Z", expected: 25},
		{column: "AA", expected: 26},
		{column: "AZ", expected: 51},
	}

	for _, tc := range tests {
		got, err := pkg.ColumnIndex(tc.column)
		if err != nil {
			t.Fatalf("%q: erro inesperado: %v", tc.column, err)
		}
		if got != tc.expected {
			t.Fatalf("%q: esperava %d, obteve %d", tc.column, tc.expected, got)
		}
	}

	if _, err := pkg.ColumnIndex(""); err == nil {
		t.Fatal("coluna vazia deveria falhar")
	}
	if _, err := pkg.ColumnIndex("A1"); err == nil {
		t.Fatal("coluna com dígito deveria falhar")
	}
}

func TestCellAt(t *testing.T) {
	t.Parallel()

	row := []string{"Alimentação", " Nubank ", "45.90"}

	if got := pkg.CellAt(row, "B"); got != "Nubank" {
		t.Fatalf("esperava célula aparada, obteve %q", got)
	}
	if got := pkg.CellAt(row, "E"); got != "" {
		t.Fatalf("linha curta deveria devolver vazio, obteve %q", got)
	}
	if got := pkg.CellAt(row, "!"); got != "" {
		t.Fatalf("coluna inválida deveria devolver vazio, obteve %q", got)
	}
}
