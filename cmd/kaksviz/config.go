package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/spf13/viper"

	"github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool/pipeline"
)

// parseArgs builds the run configuration from command-line flags plus an
// optional YAML config file. File values override built-in defaults;
// flags given on the command line override the file.
func parseArgs(args []string) (pipeline.Config, error) {
	app := kingpin.New("kaksviz", "Ka/Ks visualization tool")
	app.Version("v0.1")

	inputArg := app.Arg("input-file", "input table (CSV/TSV)").Required().String()
	configFlag := app.Flag("config", "YAML configuration file").Default("").String()
	outputDir := app.Flag("output_dir", "output directory").Default("results").String()
	clusterFlag := app.Flag("cluster", "create clustered heatmap").Default("false").Bool()
	logTransform := app.Flag("log_transform", "apply log2 transformation").Default("false").Bool()
	annotate := app.Flag("annotate", "annotate heatmap values").Default("false").Bool()
	clusterMethod := app.Flag("cluster_method", "clustering linkage method").Default("average").String()
	colormap := app.Flag("colormap", "color palette").Default("viridis").String()
	figsize := app.Flag("figsize", "figure size as WIDTHxHEIGHT in inches").Default("12x10").String()
	dpi := app.Flag("dpi", "output resolution").Default("300").Int()
	vmin := app.Flag("vmin", "minimum value for color scale").Default("NaN").Float64()
	vmax := app.Flag("vmax", "maximum value for color scale").Default("NaN").Float64()

	if _, err := app.Parse(args); err != nil {
		return pipeline.Config{}, err
	}

	if *configFlag != "" {
		v := viper.New()
		v.SetConfigFile(*configFlag)
		if err := v.ReadInConfig(); err != nil {
			return pipeline.Config{}, fmt.Errorf("read config file: %w", err)
		}
		override := func(key string, apply func()) {
			if v.IsSet(key) && !flagGiven(args, key) {
				apply()
			}
		}
		override("output_dir", func() { *outputDir = v.GetString("output_dir") })
		override("cluster", func() { *clusterFlag = v.GetBool("cluster") })
		override("log_transform", func() { *logTransform = v.GetBool("log_transform") })
		override("annotate", func() { *annotate = v.GetBool("annotate") })
		override("cluster_method", func() { *clusterMethod = v.GetString("cluster_method") })
		override("colormap", func() { *colormap = v.GetString("colormap") })
		override("figsize", func() { *figsize = v.GetString("figsize") })
		override("dpi", func() { *dpi = v.GetInt("dpi") })
		override("vmin", func() { *vmin = v.GetFloat64("vmin") })
		override("vmax", func() { *vmax = v.GetFloat64("vmax") })
	}

	width, height, err := parseFigSize(*figsize)
	if err != nil {
		return pipeline.Config{}, err
	}

	return pipeline.Config{
		InputFile:     *inputArg,
		OutputDir:     *outputDir,
		Cluster:       *clusterFlag,
		LogTransform:  *logTransform,
		Annotate:      *annotate,
		ClusterMethod: *clusterMethod,
		Colormap:      *colormap,
		FigWidth:      width,
		FigHeight:     height,
		DPI:           *dpi,
		VMin:          optional(*vmin),
		VMax:          optional(*vmax),
	}, nil
}

// flagGiven reports whether a long flag appears explicitly on the
// command line.
func flagGiven(args []string, name string) bool {
	for _, a := range args {
		if a == "--"+name || strings.HasPrefix(a, "--"+name+"=") {
			return true
		}
	}
	return false
}

// parseFigSize parses "WIDTHxHEIGHT", e.g. "12x10".
func parseFigSize(s string) (width, height float64, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid figsize %q, expected WIDTHxHEIGHT", s)
	}
	width, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err == nil {
		height, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	}
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid figsize %q, expected WIDTHxHEIGHT", s)
	}
	return width, height, nil
}

// optional turns a NaN sentinel into an unset bound.
func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
