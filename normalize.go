package kaksviz

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Record is one normalized pairwise comparison.
type Record struct {
	Gene      string
	Sequence1 string
	Sequence2 string
	Pair      string  // canonical species-pair label
	Metric    float64 // raw metric; NaN for an empty cell
	Processed float64 // cleaned metric; NaN marks an absent value

	PValue         float64
	HasPValue      bool
	Significant    bool
	HasSignificant bool
}

// NormalizedTable is the cleaned, order-preserving view of the input
// table. Built once; no consumer mutates it.
type NormalizedTable struct {
	Records      []Record
	MetricColumn string
	LogTransform bool

	src        *Table
	derivedSig bool // Significant derived from p_value
}

// PairKey builds the canonical species-pair label: the two sequence
// names sorted lexicographically and joined with " vs ". Swapping the
// arguments yields the same key.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + " vs " + b
}

// parseMetricColumn validates the whole metric column up front: a single
// unparseable cell fails the run before any row is normalized. Empty
// cells parse as NaN.
func parseMetricColumn(t *Table, col string) ([]float64, error) {
	idx := t.ColumnIndex(col)
	values := make([]float64, len(t.Rows))
	for i := range t.Rows {
		cell := strings.TrimSpace(t.Cell(i, idx))
		if cell == "" {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, &NumericConversionError{Column: col, Value: cell, Line: i + 2}
		}
		values[i] = v
	}
	return values, nil
}

// processMetric cleans one raw metric value. Infinities become absent;
// with the log transform, absent or non-positive inputs collapse to 0.
func processMetric(v float64, logTransform bool) float64 {
	if math.IsInf(v, 0) {
		v = math.NaN()
	}
	if !logTransform {
		return v
	}
	v = math.Log2(v)
	if math.IsNaN(v) || math.IsInf(v, -1) {
		return 0
	}
	return v
}

// Normalize builds the NormalizedTable from a validated input table in a
// single linear pass. If a p_value column exists and no Significant
// column was supplied, significance is derived as p < 0.05.
func Normalize(t *Table, metricColumn string, logTransform bool) (*NormalizedTable, error) {
	metrics, err := parseMetricColumn(t, metricColumn)
	if err != nil {
		return nil, err
	}

	geneIdx := t.ColumnIndex(GeneColumn)
	s1Idx := t.ColumnIndex(Sequence1Column)
	s2Idx := t.ColumnIndex(Sequence2Column)
	pIdx := t.ColumnIndex(PValueColumn)
	deriveSig := pIdx >= 0 && !t.HasColumn(SignificantColumn)

	nt := &NormalizedTable{
		Records:      make([]Record, 0, len(t.Rows)),
		MetricColumn: metricColumn,
		LogTransform: logTransform,
		src:          t,
		derivedSig:   deriveSig,
	}
	for i := range t.Rows {
		rec := Record{
			Gene:      t.Cell(i, geneIdx),
			Sequence1: t.Cell(i, s1Idx),
			Sequence2: t.Cell(i, s2Idx),
			Metric:    metrics[i],
			Processed: processMetric(metrics[i], logTransform),
		}
		rec.Pair = PairKey(rec.Sequence1, rec.Sequence2)
		if pIdx >= 0 {
			if p, err := strconv.ParseFloat(strings.TrimSpace(t.Cell(i, pIdx)), 64); err == nil {
				rec.PValue = p
				rec.HasPValue = true
			}
		}
		if deriveSig {
			// an unparseable p-value counts as not significant
			rec.Significant = rec.HasPValue && rec.PValue < 0.05
			rec.HasSignificant = true
		}
		nt.Records = append(nt.Records, rec)
	}
	return nt, nil
}

// Genes returns the distinct gene names, sorted.
func (nt *NormalizedTable) Genes() []string {
	return nt.distinct(func(r Record) string { return r.Gene })
}

// Pairs returns the distinct species-pair labels, sorted.
func (nt *NormalizedTable) Pairs() []string {
	return nt.distinct(func(r Record) string { return r.Pair })
}

func (nt *NormalizedTable) distinct(key func(Record) string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range nt.Records {
		k := key(rec)
		if !seen[k] {
			seen[k] = true
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// WriteCSV writes the normalized table: every original column followed
// by the derived species_pair, Ka_Ks_processed and, when significance
// was derived, Significant. Absent values are written as empty cells.
func (nt *NormalizedTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string(nil), nt.src.Columns...)
	header = append(header, "species_pair", "Ka_Ks_processed")
	if nt.derivedSig {
		header = append(header, SignificantColumn)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, rec := range nt.Records {
		row := make([]string, 0, len(header))
		for c := range nt.src.Columns {
			row = append(row, nt.src.Cell(i, c))
		}
		row = append(row, rec.Pair, formatFloatCell(rec.Processed))
		if nt.derivedSig {
			row = append(row, strconv.FormatBool(rec.Significant))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatFloatCell renders a float for CSV output; absent values become
// empty cells.
func formatFloatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
