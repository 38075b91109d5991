package render

import (
	"fmt"
	"image/color"

	"github.com/mazznoer/colorgrad"
	"gonum.org/v1/plot/palette"
)

// Colormap adapts a named colorgrad gradient to gonum's
// palette.ColorMap interface.
type Colormap struct {
	grad     colorgrad.Gradient
	min, max float64
	alpha    float64
}

var gradients = map[string]func() colorgrad.Gradient{
	"viridis":  colorgrad.Viridis,
	"inferno":  colorgrad.Inferno,
	"magma":    colorgrad.Magma,
	"plasma":   colorgrad.Plasma,
	"cividis":  colorgrad.Cividis,
	"turbo":    colorgrad.Turbo,
	"warm":     colorgrad.Warm,
	"cool":     colorgrad.Cool,
	"rainbow":  colorgrad.Rainbow,
	"spectral": colorgrad.Spectral,
}

// NewColormap looks up a colormap by name.
func NewColormap(name string) (*Colormap, error) {
	f, ok := gradients[name]
	if !ok {
		return nil, fmt.Errorf("unknown colormap %q", name)
	}
	return &Colormap{grad: f(), min: 0, max: 1, alpha: 1}, nil
}

// At maps a value onto the gradient, clamping outside [Min, Max].
func (c *Colormap) At(v float64) (color.Color, error) {
	t := 0.0
	if c.max > c.min {
		t = (v - c.min) / (c.max - c.min)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return c.grad.At(t), nil
}

func (c *Colormap) Min() float64     { return c.min }
func (c *Colormap) SetMin(v float64) { c.min = v }
func (c *Colormap) Max() float64     { return c.max }
func (c *Colormap) SetMax(v float64) { c.max = v }

func (c *Colormap) Alpha() float64     { return c.alpha }
func (c *Colormap) SetAlpha(v float64) { c.alpha = v }

// Palette samples n evenly spaced colors from the gradient.
func (c *Colormap) Palette(n int) palette.Palette {
	colors := make([]color.Color, n)
	for i := range colors {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		colors[i] = c.grad.At(t)
	}
	return paletteColors(colors)
}

type paletteColors []color.Color

func (p paletteColors) Colors() []color.Color { return p }
