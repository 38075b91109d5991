// Package pipeline wires table reading, normalization, aggregation and
// rendering into one batch run.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	kaksviz "github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool"
	"github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool/render"
)

// Config is the immutable run configuration, constructed once by the
// caller and passed to every stage.
type Config struct {
	InputFile string
	OutputDir string

	Cluster       bool
	LogTransform  bool
	Annotate      bool
	ClusterMethod string
	Colormap      string
	FigWidth      float64 // inches
	FigHeight     float64 // inches
	DPI           int
	VMin          *float64
	VMax          *float64
}

// renderClustered is swappable so tests can force a clustering failure.
var renderClustered = render.ClusteredHeatmap

// Run executes the whole pipeline. A clustering failure is logged and
// absorbed; every other error is fatal to the run.
func Run(cfg Config) error {
	t, err := kaksviz.ReadTableFile(cfg.InputFile)
	if err != nil {
		return err
	}
	metric, err := kaksviz.Validate(t)
	if err != nil {
		return err
	}
	nt, err := kaksviz.Normalize(t, metric, cfg.LogTransform)
	if err != nil {
		return err
	}
	m := kaksviz.BuildMatrix(nt)

	opt := render.Options{
		Colormap:   cfg.Colormap,
		Annotate:   cfg.Annotate,
		VMin:       cfg.VMin,
		VMax:       cfg.VMax,
		Width:      cfg.FigWidth,
		Height:     cfg.FigHeight,
		DPI:        cfg.DPI,
		ValueLabel: "Ka/Ks",
	}
	if cfg.LogTransform {
		opt.ValueLabel = "log2(Ka/Ks)"
	}

	if err := render.Heatmap(m, opt, filepath.Join(cfg.OutputDir, "heatmap.png")); err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	if cfg.Cluster {
		path := filepath.Join(cfg.OutputDir, "clustered_heatmap.png")
		if err := renderClustered(m, cfg.ClusterMethod, opt, path); err != nil {
			kaksviz.Warn.Printf("Error in clustering: %v\n", err)
		}
	}
	if err := render.DotPlot(nt, opt, filepath.Join(cfg.OutputDir, "dot_plot.png")); err != nil {
		return fmt.Errorf("render dot plot: %w", err)
	}
	if err := writeProcessed(nt, filepath.Join(cfg.OutputDir, "processed_data.csv")); err != nil {
		return err
	}
	kaksviz.Info.Printf("Visualizations saved to %s\n", cfg.OutputDir)
	return nil
}

func writeProcessed(nt *kaksviz.NormalizedTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nt.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
