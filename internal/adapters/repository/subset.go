package repository

import "github.com/aqio/aqdash/internal/domain/types"

// Subset is a zero-copy view over a set of store rows, produced by station
// filtering. It carries everything the summary and EDA views need.
type Subset struct {
	store *CSVStore
	rows  []int
}

// Len returns the number of rows in the subset.
func (v *Subset) Len() int {
	return len(v.rows)
}

// ColumnCount returns the dataset column count.
func (v *Subset) ColumnCount() int {
	return len(v.store.header)
}

// Columns returns the dataset header in file order.
func (v *Subset) Columns() []string {
	return v.store.Columns()
}

// NumericColumns returns the numeric column names in file order.
func (v *Subset) NumericColumns() []string {
	return append([]string(nil), v.store.numericOrd...)
}

// Numeric gathers one numeric column for the subset's rows. Missing cells
// are NaN. The second return is false for unknown or non-numeric columns.
func (v *Subset) Numeric(column string) ([]float64, bool) {
	full, ok := v.store.numeric[column]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(v.rows))
	for i, row := range v.rows {
		out[i] = full[row]
	}
	return out, true
}

// SampleRows returns the header and up to n leading rows as raw strings.
func (v *Subset) SampleRows(n int) ([]string, [][]string) {
	if n > len(v.rows) {
		n = len(v.rows)
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		rows[i] = append([]string(nil), v.store.cells[v.rows[i]]...)
	}
	return v.store.Columns(), rows
}

// MissingByColumn returns, in header order, every column with at least one
// missing cell in the subset.
func (v *Subset) MissingByColumn() []types.ColumnMissing {
	var out []types.ColumnMissing
	for col, name := range v.store.header {
		count := 0
		for _, row := range v.rows {
			if v.store.missingTokens[v.store.cells[row][col]] {
				count++
			}
		}
		if count > 0 {
			out = append(out, types.ColumnMissing{Column: name, Missing: count})
		}
	}
	return out
}

// MissingPercent returns the mean missing-value percentage across all cells
// of the subset, in [0,100].
func (v *Subset) MissingPercent() float64 {
	total := len(v.rows) * len(v.store.header)
	if total == 0 {
		return 0
	}
	missing := 0
	for _, row := range v.rows {
		for _, cell := range v.store.cells[row] {
			if v.store.missingTokens[cell] {
				missing++
			}
		}
	}
	return 100 * float64(missing) / float64(total)
}
