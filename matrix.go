package kaksviz

import (
	"math"
)

// Matrix is the gene-by-species-pair aggregation of a NormalizedTable.
// Cells with no contributing record are absent, never zero.
type Matrix struct {
	Genes  []string // row labels, sorted
	Pairs  []string // column labels, sorted
	values [][]float64
}

// BuildMatrix aggregates processed metrics by (gene, pair), keeping the
// maximum across duplicate combinations. Records whose processed value
// is absent contribute nothing.
func BuildMatrix(nt *NormalizedTable) *Matrix {
	m := &Matrix{Genes: nt.Genes(), Pairs: nt.Pairs()}
	rowIdx := make(map[string]int, len(m.Genes))
	for i, g := range m.Genes {
		rowIdx[g] = i
	}
	colIdx := make(map[string]int, len(m.Pairs))
	for i, p := range m.Pairs {
		colIdx[p] = i
	}

	m.values = make([][]float64, len(m.Genes))
	for r := range m.values {
		row := make([]float64, len(m.Pairs))
		for c := range row {
			row[c] = math.NaN()
		}
		m.values[r] = row
	}
	for _, rec := range nt.Records {
		if math.IsNaN(rec.Processed) {
			continue
		}
		r, c := rowIdx[rec.Gene], colIdx[rec.Pair]
		if cur := m.values[r][c]; math.IsNaN(cur) || rec.Processed > cur {
			m.values[r][c] = rec.Processed
		}
	}
	return m
}

// Value returns the aggregated cell value and whether it is present.
func (m *Matrix) Value(row, col int) (float64, bool) {
	v := m.values[row][col]
	return v, !math.IsNaN(v)
}

// Range returns the minimum and maximum present values; ok is false
// when every cell is absent.
func (m *Matrix) Range() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, row := range m.values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
			ok = true
		}
	}
	return min, max, ok
}

// FillZero returns a dense copy with absent cells replaced by 0. The
// matrix itself is never modified; the copy exists only for clustering
// and the clustered rendering.
func (m *Matrix) FillZero() [][]float64 {
	filled := make([][]float64, len(m.values))
	for r, row := range m.values {
		out := make([]float64, len(row))
		for c, v := range row {
			if math.IsNaN(v) {
				v = 0
			}
			out[c] = v
		}
		filled[r] = out
	}
	return filled
}
