// Package render draws the heatmap, clustered heatmap and dot plot
// artifacts with gonum/plot.
package render

import (
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Options carries the rendering settings shared by all artifacts.
type Options struct {
	Colormap   string
	Annotate   bool
	VMin, VMax *float64 // nil means auto-scaled from data
	Width      float64  // inches
	Height     float64  // inches
	DPI        int
	ValueLabel string // color-bar / value-axis label
}

// newCanvas builds a PNG canvas of the given size in inches at the
// configured resolution.
func newCanvas(width, height float64, dpi int) *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
}

// writePNG flushes a canvas to disk.
func writePNG(c *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// savePlot renders a single plot to a PNG file.
func savePlot(p *plot.Plot, opt Options, path string) error {
	c := newCanvas(opt.Width, opt.Height, opt.DPI)
	p.Draw(draw.New(c))
	return writePNG(c, path)
}
