package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	kaksviz "github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool"
)

// cellGrid is the plotter behind both heatmap variants: one filled
// rectangle per present cell, absent cells left blank and excluded from
// the color scale.
type cellGrid struct {
	values [][]float64 // NaN marks an absent cell
	cmap   *Colormap
	border draw.LineStyle
}

func newCellGrid(values [][]float64, cmap *Colormap) *cellGrid {
	return &cellGrid{
		values: values,
		cmap:   cmap,
		border: draw.LineStyle{Color: color.White, Width: vg.Points(0.5)},
	}
}

func (g *cellGrid) dims() (rows, cols int) {
	rows = len(g.values)
	if rows > 0 {
		cols = len(g.values[0])
	}
	return
}

// DataRange implements plot.DataRanger. Cell (r, c) is centered on
// (c, rows-1-r) so the first row renders at the top.
func (g *cellGrid) DataRange() (xmin, xmax, ymin, ymax float64) {
	rows, cols := g.dims()
	return -0.5, float64(cols) - 0.5, -0.5, float64(rows) - 0.5
}

// Plot implements plot.Plotter.
func (g *cellGrid) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	rows, _ := g.dims()
	for r := range g.values {
		for col, v := range g.values[r] {
			if math.IsNaN(v) {
				continue
			}
			x0 := trX(float64(col) - 0.5)
			x1 := trX(float64(col) + 0.5)
			y := float64(rows - 1 - r)
			y0 := trY(y - 0.5)
			y1 := trY(y + 0.5)

			clr, err := g.cmap.At(v)
			if err != nil {
				clr = color.Black
			}
			c.SetColor(clr)
			var pa vg.Path
			pa.Move(vg.Point{X: x0, Y: y0})
			pa.Line(vg.Point{X: x1, Y: y0})
			pa.Line(vg.Point{X: x1, Y: y1})
			pa.Line(vg.Point{X: x0, Y: y1})
			pa.Close()
			c.Fill(pa)
			c.StrokeLines(g.border, []vg.Point{
				{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1},
				{X: x0, Y: y1}, {X: x0, Y: y0},
			})
		}
	}
}

// labelCells builds centered value annotations for present cells. With
// skipZero set, cells equal to exactly 0 carry no label (used by the
// clustered variant, where zero-filled cells look like no data).
func labelCells(values [][]float64, skipZero bool) (*plotter.Labels, error) {
	var xys plotter.XYs
	var texts []string
	rows := len(values)
	for r := range values {
		for c, v := range values[r] {
			if math.IsNaN(v) {
				continue
			}
			if skipZero && v == 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(rows - 1 - r)})
			texts = append(texts, fmt.Sprintf("%.2f", v))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	return labels, nil
}

// nominalAxes puts the category labels on both axes, x labels rotated
// vertically.
func nominalAxes(p *plot.Plot, xNames, yNames []string) {
	xt := make([]plot.Tick, len(xNames))
	for i, n := range xNames {
		xt[i] = plot.Tick{Value: float64(i), Label: n}
	}
	yt := make([]plot.Tick, len(yNames))
	for i, n := range yNames {
		yt[i] = plot.Tick{Value: float64(len(yNames) - 1 - i), Label: n}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xt)
	p.Y.Tick.Marker = plot.ConstantTicks(yt)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// setScale fixes the color scale from explicit bounds or, where absent,
// from the present data.
func setScale(cmap *Colormap, values [][]float64, opt Options) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, row := range values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if min > max {
		min, max = 0, 1
	}
	if opt.VMin != nil {
		min = *opt.VMin
	}
	if opt.VMax != nil {
		max = *opt.VMax
	}
	if max <= min {
		max = min + 1
	}
	cmap.SetMin(min)
	cmap.SetMax(max)
}

// matrixValues copies the matrix into a dense grid with NaN for absent
// cells.
func matrixValues(m *kaksviz.Matrix) [][]float64 {
	values := make([][]float64, len(m.Genes))
	for r := range values {
		row := make([]float64, len(m.Pairs))
		for c := range row {
			v, ok := m.Value(r, c)
			if !ok {
				v = math.NaN()
			}
			row[c] = v
		}
		values[r] = row
	}
	return values
}

// heatmapPlot assembles the annotated heatmap plot for a value grid.
func heatmapPlot(values [][]float64, xNames, yNames []string, cmap *Colormap, opt Options, skipZero bool) (*plot.Plot, error) {
	p := plot.New()
	p.Add(newCellGrid(values, cmap))
	if opt.Annotate {
		labels, err := labelCells(values, skipZero)
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}
	nominalAxes(p, xNames, yNames)
	return p, nil
}

// colorBarPlot builds the vertical color bar with the value label.
func colorBarPlot(cmap *Colormap, label string) *plot.Plot {
	bar := plot.New()
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})
	bar.HideX()
	bar.Y.Label.Text = label
	return bar
}

// Heatmap renders the gene-by-species-pair matrix to a PNG file. Absent
// cells stay blank and carry no annotation.
func Heatmap(m *kaksviz.Matrix, opt Options, path string) error {
	if len(m.Genes) == 0 || len(m.Pairs) == 0 {
		return fmt.Errorf("heatmap: no data to plot")
	}
	cmap, err := NewColormap(opt.Colormap)
	if err != nil {
		return err
	}
	values := matrixValues(m)
	setScale(cmap, values, opt)

	p, err := heatmapPlot(values, m.Pairs, m.Genes, cmap, opt, false)
	if err != nil {
		return err
	}
	bar := colorBarPlot(cmap, opt.ValueLabel)

	c := newCanvas(opt.Width, opt.Height, opt.DPI)
	dc := draw.New(c)
	barW := (dc.Max.X - dc.Min.X) * 0.12
	p.Draw(draw.Crop(dc, 0, -barW, 0, 0))
	bar.Draw(draw.Crop(dc, dc.Max.X-dc.Min.X-barW, 0, 0, 0))
	return writePNG(c, path)
}
