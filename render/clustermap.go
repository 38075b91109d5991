package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	kaksviz "github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool"
	"github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool/cluster"
)

// ClusteringError marks a recoverable failure in the clustered-heatmap
// stage; the pipeline logs it and keeps going.
type ClusteringError struct {
	Err error
}

func (e *ClusteringError) Error() string { return "clustering: " + e.Err.Error() }
func (e *ClusteringError) Unwrap() error { return e.Err }

// ClusteredHeatmap zero-fills absent cells, clusters rows and columns
// independently, and renders row and column dendrograms plus the
// reordered heatmap on one canvas. Every failure comes back as a
// *ClusteringError; the source matrix is never modified.
func ClusteredHeatmap(m *kaksviz.Matrix, method string, opt Options, path string) error {
	if err := clusteredHeatmap(m, method, opt, path); err != nil {
		return &ClusteringError{Err: err}
	}
	return nil
}

func clusteredHeatmap(m *kaksviz.Matrix, method string, opt Options, path string) error {
	lm, err := cluster.ParseMethod(method)
	if err != nil {
		return err
	}
	filled := m.FillZero()
	rowMerges, err := cluster.Linkage(filled, lm)
	if err != nil {
		return err
	}
	colMerges, err := cluster.Linkage(transpose(filled), lm)
	if err != nil {
		return err
	}
	rowOrder := cluster.LeafOrder(rowMerges, len(m.Genes))
	colOrder := cluster.LeafOrder(colMerges, len(m.Pairs))

	values := reorder(filled, rowOrder, colOrder)
	genes := permute(m.Genes, rowOrder)
	pairs := permute(m.Pairs, colOrder)

	cmap, err := NewColormap(opt.Colormap)
	if err != nil {
		return err
	}
	setScale(cmap, values, opt)

	// zero-filled cells are indistinguishable from no data here, so they
	// are never annotated
	p, err := heatmapPlot(values, pairs, genes, cmap, opt, true)
	if err != nil {
		return err
	}
	colDendro := dendrogramPlot(colMerges, len(pairs), colOrder, false)
	rowDendro := dendrogramPlot(rowMerges, len(genes), rowOrder, true)
	bar := colorBarPlot(cmap, opt.ValueLabel)

	c := newCanvas(opt.Width, opt.Height, opt.DPI)
	dc := draw.New(c)
	w := dc.Max.X - dc.Min.X
	h := dc.Max.Y - dc.Min.Y
	topH := h * 0.18
	leftW := w * 0.12
	barW := w * 0.1

	p.Draw(draw.Crop(dc, leftW, -barW, 0, -topH))
	colDendro.Draw(draw.Crop(dc, leftW, -barW, h-topH, 0))
	rowDendro.Draw(draw.Crop(dc, 0, leftW-w, 0, -topH))
	bar.Draw(draw.Crop(dc, w-barW, 0, 0, -topH))
	return writePNG(c, path)
}

func transpose(values [][]float64) [][]float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([][]float64, len(values[0]))
	for c := range out {
		col := make([]float64, len(values))
		for r := range values {
			col[r] = values[r][c]
		}
		out[c] = col
	}
	return out
}

func reorder(values [][]float64, rowOrder, colOrder []int) [][]float64 {
	out := make([][]float64, len(rowOrder))
	for i, r := range rowOrder {
		row := make([]float64, len(colOrder))
		for j, c := range colOrder {
			row[j] = values[r][c]
		}
		out[i] = row
	}
	return out
}

func permute(names []string, order []int) []string {
	out := make([]string, len(order))
	for i, j := range order {
		out[i] = names[j]
	}
	return out
}

// dendrogramPlot draws the merge tree along the reordered axis: above
// the heatmap for columns, or flipped on its side for rows.
func dendrogramPlot(merges []cluster.Merge, n int, order []int, flip bool) *plot.Plot {
	p := plot.New()
	p.HideAxes()
	d := &dendrogram{merges: merges, n: n, flip: flip}
	d.layout(order)
	p.Add(d)
	return p
}

type dendrogram struct {
	merges []cluster.Merge
	n      int
	flip   bool // sideways, for the row dendrogram

	pos    []float64 // axis position per cluster id
	height []float64 // merge distance per cluster id; 0 for leaves
	maxH   float64
}

// layout assigns each leaf its slot on the reordered axis and each
// merged cluster the midpoint of its children.
func (d *dendrogram) layout(order []int) {
	total := 2*d.n - 1
	d.pos = make([]float64, total)
	d.height = make([]float64, total)
	for slot, leaf := range order {
		d.pos[leaf] = float64(slot)
	}
	for i, m := range d.merges {
		id := d.n + i
		d.pos[id] = (d.pos[m.A] + d.pos[m.B]) / 2
		d.height[id] = m.Dist
		if m.Dist > d.maxH {
			d.maxH = m.Dist
		}
	}
	if d.maxH == 0 {
		d.maxH = 1
	}
}

// DataRange implements plot.DataRanger.
func (d *dendrogram) DataRange() (xmin, xmax, ymin, ymax float64) {
	if d.flip {
		return 0, d.maxH, -0.5, float64(d.n) - 0.5
	}
	return -0.5, float64(d.n) - 0.5, 0, d.maxH
}

// Plot implements plot.Plotter, drawing one U-shaped link per merge.
func (d *dendrogram) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sty := draw.LineStyle{Color: color.Black, Width: vg.Points(0.75)}
	for i, m := range d.merges {
		h := d.height[d.n+i]
		ha, hb := d.height[m.A], d.height[m.B]
		pa, pb := d.pos[m.A], d.pos[m.B]
		var pts []vg.Point
		if d.flip {
			// leaves sit against the heatmap's left edge; distance grows
			// leftward
			ya, yb := float64(d.n-1)-pa, float64(d.n-1)-pb
			pts = []vg.Point{
				{X: trX(d.maxH - ha), Y: trY(ya)},
				{X: trX(d.maxH - h), Y: trY(ya)},
				{X: trX(d.maxH - h), Y: trY(yb)},
				{X: trX(d.maxH - hb), Y: trY(yb)},
			}
		} else {
			pts = []vg.Point{
				{X: trX(pa), Y: trY(ha)},
				{X: trX(pa), Y: trY(h)},
				{X: trX(pb), Y: trY(h)},
				{X: trX(pb), Y: trY(hb)},
			}
		}
		c.StrokeLines(sty, pts)
	}
}
