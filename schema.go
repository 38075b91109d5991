package kaksviz

// MetricAliases is the ordered list of column names accepted for the
// divergence metric; the first one present in the table wins.
var MetricAliases = []string{"Ka/Ks", "Ka_Ks", "KaKs", "dN/dS", "dn_ds"}

// Column names recognized by the normalizer.
const (
	GeneColumn        = "Gene"
	Sequence1Column   = "Sequence1"
	Sequence2Column   = "Sequence2"
	PValueColumn      = "p_value"
	SignificantColumn = "Significant"
)

// ResolveMetricColumn returns the first metric alias present among the
// given columns.
func ResolveMetricColumn(columns []string) (string, error) {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, alias := range MetricAliases {
		if present[alias] {
			return alias, nil
		}
	}
	return "", &MissingColumnError{
		Tried:     append([]string(nil), MetricAliases...),
		Available: append([]string(nil), columns...),
	}
}

// Validate resolves the metric column and verifies that every required
// column is present, returning the resolved metric column name.
func Validate(t *Table) (string, error) {
	metric, err := ResolveMetricColumn(t.Columns)
	if err != nil {
		return "", err
	}
	var missing []string
	for _, c := range []string{GeneColumn, Sequence1Column, Sequence2Column, metric} {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return "", &MissingRequiredColumnError{
			Missing:   missing,
			Available: append([]string(nil), t.Columns...),
		}
	}
	return metric, nil
}
