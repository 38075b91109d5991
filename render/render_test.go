package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kaksviz "github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool"
)

func testMatrix(t *testing.T) (*kaksviz.Matrix, *kaksviz.NormalizedTable) {
	t.Helper()
	tab := &kaksviz.Table{
		Columns: []string{"Gene", "Sequence1", "Sequence2", "Ka/Ks"},
		Rows: [][]string{
			{"GeneA", "S1", "S2", "1.25"},
			{"GeneA", "S2", "S1", "0.75"},
			{"GeneA", "S1", "S3", "0.4"},
			{"GeneB", "S1", "S2", "0.9"},
			{"GeneB", "S1", "S3", "2.1"},
		},
	}
	nt, err := kaksviz.Normalize(tab, "Ka/Ks", false)
	require.NoError(t, err)
	return kaksviz.BuildMatrix(nt), nt
}

func testOptions() Options {
	return Options{
		Colormap:   "viridis",
		Annotate:   true,
		Width:      6,
		Height:     5,
		DPI:        72,
		ValueLabel: "Ka/Ks",
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))
}

func TestHeatmap(t *testing.T) {
	m, _ := testMatrix(t)
	path := filepath.Join(t.TempDir(), "heatmap.png")
	require.NoError(t, Heatmap(m, testOptions(), path))
	assertPNG(t, path)
}

func TestHeatmapUnknownColormap(t *testing.T) {
	m, _ := testMatrix(t)
	opt := testOptions()
	opt.Colormap = "nope"
	err := Heatmap(m, opt, filepath.Join(t.TempDir(), "heatmap.png"))
	assert.Error(t, err)
}

func TestClusteredHeatmap(t *testing.T) {
	m, _ := testMatrix(t)
	path := filepath.Join(t.TempDir(), "clustered_heatmap.png")
	require.NoError(t, ClusteredHeatmap(m, "average", testOptions(), path))
	assertPNG(t, path)
}

func TestClusteredHeatmapUnknownMethod(t *testing.T) {
	m, _ := testMatrix(t)
	err := ClusteredHeatmap(m, "ward", testOptions(), filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)

	var ce *ClusteringError
	assert.True(t, errors.As(err, &ce))
}

func TestClusteredHeatmapTooFewRows(t *testing.T) {
	tab := &kaksviz.Table{
		Columns: []string{"Gene", "Sequence1", "Sequence2", "Ka/Ks"},
		Rows:    [][]string{{"GeneA", "S1", "S2", "1.0"}},
	}
	nt, err := kaksviz.Normalize(tab, "Ka/Ks", false)
	require.NoError(t, err)
	m := kaksviz.BuildMatrix(nt)

	err = ClusteredHeatmap(m, "average", testOptions(), filepath.Join(t.TempDir(), "x.png"))
	var ce *ClusteringError
	assert.True(t, errors.As(err, &ce))
}

func TestDotPlot(t *testing.T) {
	_, nt := testMatrix(t)
	path := filepath.Join(t.TempDir(), "dot_plot.png")
	require.NoError(t, DotPlot(nt, testOptions(), path))
	assertPNG(t, path)
}

func TestNewColormap(t *testing.T) {
	cm, err := NewColormap("viridis")
	require.NoError(t, err)
	cm.SetMin(0)
	cm.SetMax(2)
	lo, err := cm.At(-1) // clamps below Min
	require.NoError(t, err)
	min, err := cm.At(0)
	require.NoError(t, err)
	assert.Equal(t, min, lo)

	_, err = NewColormap("not-a-colormap")
	assert.Error(t, err)
}
