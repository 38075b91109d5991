package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kaksviz "github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool"
	"github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool/render"
)

const testInput = `Gene,Sequence1,Sequence2,Ka/Ks,p_value
GeneA,S1,S2,1.25,0.01
GeneA,S2,S1,0.75,0.2
GeneA,S1,S3,0.4,0.03
GeneB,S1,S2,0.9,0.6
GeneB,S1,S3,2.1,0.001
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T, input string) Config {
	return Config{
		InputFile:     input,
		OutputDir:     t.TempDir(),
		ClusterMethod: "average",
		Colormap:      "viridis",
		FigWidth:      6,
		FigHeight:     5,
		DPI:           72,
	}
}

func TestRunWritesArtifacts(t *testing.T) {
	cfg := testConfig(t, writeInput(t, testInput))
	require.NoError(t, Run(cfg))

	for _, name := range []string{"heatmap.png", "dot_plot.png", "processed_data.csv"} {
		fi, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, fi.Size(), int64(0), name)
	}
	// clustering was not requested
	_, err := os.Stat(filepath.Join(cfg.OutputDir, "clustered_heatmap.png"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "processed_data.csv"))
	require.NoError(t, err)
	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.Contains(t, header, "species_pair")
	assert.Contains(t, header, "Ka_Ks_processed")
	assert.Contains(t, header, "Significant")
}

func TestRunWithClustering(t *testing.T) {
	cfg := testConfig(t, writeInput(t, testInput))
	cfg.Cluster = true
	require.NoError(t, Run(cfg))

	fi, err := os.Stat(filepath.Join(cfg.OutputDir, "clustered_heatmap.png"))
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))
}

func TestRunClusterFailureIsNonFatal(t *testing.T) {
	orig := renderClustered
	renderClustered = func(*kaksviz.Matrix, string, render.Options, string) error {
		return errors.New("forced clustering failure")
	}
	defer func() { renderClustered = orig }()

	cfg := testConfig(t, writeInput(t, testInput))
	cfg.Cluster = true
	require.NoError(t, Run(cfg))

	// the run still produced the dot plot and the normalized table
	for _, name := range []string{"dot_plot.png", "processed_data.csv"} {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, name)
	}
	_, err := os.Stat(filepath.Join(cfg.OutputDir, "clustered_heatmap.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunMissingRequiredColumn(t *testing.T) {
	input := writeInput(t, "Gene,Sequence1,Ka/Ks\nGeneA,S1,1.0\n")
	err := Run(testConfig(t, input))
	require.Error(t, err)

	var mrce *kaksviz.MissingRequiredColumnError
	require.True(t, errors.As(err, &mrce))
	assert.Equal(t, []string{"Sequence2"}, mrce.Missing)
}

func TestRunMissingMetricColumn(t *testing.T) {
	input := writeInput(t, "Gene,Sequence1,Sequence2,score\nGeneA,S1,S2,1.0\n")
	err := Run(testConfig(t, input))
	require.Error(t, err)

	var mce *kaksviz.MissingColumnError
	assert.True(t, errors.As(err, &mce))
}

func TestRunBadMetricValueIsFatal(t *testing.T) {
	input := writeInput(t, "Gene,Sequence1,Sequence2,Ka/Ks\nGeneA,S1,S2,abc\n")
	err := Run(testConfig(t, input))
	require.Error(t, err)

	var nce *kaksviz.NumericConversionError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, "abc", nce.Value)
}

func TestRunMissingInputFile(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, Run(cfg))
}
