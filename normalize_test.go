package kaksviz

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(columns []string, rows ...[]string) *Table {
	return &Table{Columns: columns, Rows: rows}
}

func TestPairKeySymmetry(t *testing.T) {
	assert.Equal(t, "S1 vs S2", PairKey("S1", "S2"))
	assert.Equal(t, "S1 vs S2", PairKey("S2", "S1"))
	assert.Equal(t, PairKey("human", "chimp"), PairKey("chimp", "human"))
}

func TestNormalizeInfinityBecomesAbsent(t *testing.T) {
	tab := newTable(
		[]string{"Gene", "Sequence1", "Sequence2", "Ka/Ks"},
		[]string{"g1", "A", "B", "inf"},
		[]string{"g2", "A", "B", "-inf"},
	)
	nt, err := Normalize(tab, "Ka/Ks", false)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nt.Records[0].Processed))
	assert.True(t, math.IsNaN(nt.Records[1].Processed))
}

func TestNormalizeLogTransformEdgeValues(t *testing.T) {
	tab := newTable(
		[]string{"Gene", "Sequence1", "Sequence2", "Ka/Ks"},
		[]string{"g1", "A", "B", "0"},
		[]string{"g2", "A", "B", "-1.5"},
		[]string{"g3", "A", "B", "inf"},
		[]string{"g4", "A", "B", "2"},
		[]string{"g5", "A", "B", "8"},
	)
	nt, err := Normalize(tab, "Ka/Ks", true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, nt.Records[0].Processed) // log2(0) collapses to 0
	assert.Equal(t, 0.0, nt.Records[1].Processed) // log2 of a negative too
	assert.Equal(t, 0.0, nt.Records[2].Processed) // and of an infinite ratio
	assert.InDelta(t, 1.0, nt.Records[3].Processed, 1e-12)
	assert.InDelta(t, 3.0, nt.Records[4].Processed, 1e-12)
}

func TestNormalizeDerivesSignificance(t *testing.T) {
	tab := newTable(
		[]string{"Gene", "Sequence1", "Sequence2", "Ka/Ks", "p_value"},
		[]string{"g1", "A", "B", "1.0", "0.01"},
		[]string{"g2", "A", "B", "1.0", "0.5"},
	)
	nt, err := Normalize(tab, "Ka/Ks", false)
	require.NoError(t, err)
	require.True(t, nt.Records[0].HasSignificant)
	assert.True(t, nt.Records[0].Significant)
	assert.False(t, nt.Records[1].Significant)
}

func TestNormalizeExplicitSignificantColumnWins(t *testing.T) {
	tab := newTable(
		[]string{"Gene", "Sequence1", "Sequence2", "Ka/Ks", "p_value", "Significant"},
		[]string{"g1", "A", "B", "1.0", "0.01", "no"},
	)
	nt, err := Normalize(tab, "Ka/Ks", false)
	require.NoError(t, err)
	assert.False(t, nt.Records[0].HasSignificant)
}

func TestNormalizeNumericConversionError(t *testing.T) {
	tab := newTable(
		[]string{"Gene", "Sequence1", "Sequence2", "Ka/Ks"},
		[]string{"g1", "A", "B", "1.0"},
		[]string{"g2", "A", "B", "n/a"},
	)
	_, err := Normalize(tab, "Ka/Ks", false)
	require.Error(t, err)

	var nce *NumericConversionError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, "n/a", nce.Value)
	assert.Equal(t, "Ka/Ks", nce.Column)
	assert.Equal(t, 3, nce.Line)
	assert.Contains(t, err.Error(), "n/a")
}

func TestNormalizeEmptyMetricCellIsAbsent(t *testing.T) {
	tab := newTable(
		[]string{"Gene", "Sequence1", "Sequence2", "Ka/Ks"},
		[]string{"g1", "A", "B", ""},
	)
	nt, err := Normalize(tab, "Ka/Ks", false)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nt.Records[0].Metric))
	assert.True(t, math.IsNaN(nt.Records[0].Processed))
}

func TestWriteCSV(t *testing.T) {
	tab := newTable(
		[]string{"Gene", "Sequence1", "Sequence2", "Ka/Ks", "p_value"},
		[]string{"g1", "B", "A", "1.25", "0.01"},
		[]string{"g2", "A", "B", "inf", "0.9"},
	)
	nt, err := Normalize(tab, "Ka/Ks", false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, nt.WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Gene,Sequence1,Sequence2,Ka/Ks,p_value,species_pair,Ka_Ks_processed,Significant", lines[0])
	assert.Equal(t, "g1,B,A,1.25,0.01,A vs B,1.25,true", lines[1])
	// the infinite ratio becomes an absent (empty) processed cell
	assert.Equal(t, "g2,A,B,inf,0.9,A vs B,,false", lines[2])
}
