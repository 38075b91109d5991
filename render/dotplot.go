package render

import (
	"math"
	"math/rand"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	kaksviz "github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool"
)

// DotPlot renders the per-record metric against species pair, grouped
// and colored by gene, with dodged placement plus jitter to limit
// overplotting. Records with an absent processed value are skipped.
func DotPlot(nt *kaksviz.NormalizedTable, opt Options, path string) error {
	cmap, err := NewColormap(opt.Colormap)
	if err != nil {
		return err
	}
	pairs := nt.Pairs()
	genes := nt.Genes()
	pairIdx := make(map[string]int, len(pairs))
	for i, pr := range pairs {
		pairIdx[pr] = i
	}

	p := plot.New()
	p.Y.Label.Text = opt.ValueLabel

	colors := cmap.Palette(len(genes)).Colors()
	rng := rand.New(rand.NewSource(1)) // deterministic jitter
	const groupWidth = 0.8
	slot := groupWidth
	if len(genes) > 0 {
		slot = groupWidth / float64(len(genes))
	}

	for gi, gene := range genes {
		var xys plotter.XYs
		for _, rec := range nt.Records {
			if rec.Gene != gene || math.IsNaN(rec.Processed) {
				continue
			}
			center := float64(pairIdx[rec.Pair]) - groupWidth/2 + (float64(gi)+0.5)*slot
			x := center + (rng.Float64()-0.5)*slot*0.6
			xys = append(xys, plotter.XY{X: x, Y: rec.Processed})
		}
		if len(xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = colors[gi]
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(gene, sc)
	}
	p.NominalX(pairs...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Legend.Top = true

	// the dot plot keeps its own fixed 12x8 inch frame
	dopt := opt
	dopt.Width, dopt.Height = 12, 8
	return savePlot(p, dopt, path)
}
