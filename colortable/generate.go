package colortable

import (
	"fmt"
	"image/color"

	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

// Gradient describes NumberColors entries blending from StartColor towards EndColor.
// EndColor itself is not emitted so consecutive gradients can share a stop.
type Gradient struct {
	StartColor   color.RGBA `yaml:"start_color"`
	EndColor     color.RGBA `yaml:"end_color"`
	NumberColors int        `yaml:"number_colors"`
}

func (g *Gradient) generate() []color.RGBA {
	palette := make([]color.RGBA, 0, g.NumberColors)
	for j := 0; j < g.NumberColors; j++ {
		fraction := float64(j) / float64(g.NumberColors)
		palette = append(palette, misc.LinearInterpolationRGB(g.StartColor, g.EndColor, fraction))
	}
	return palette
}

// Generate concatenates the gradients into one table.
func Generate(gradients []Gradient) (*Table, error) {
	colors := make([]color.RGBA, 0)
	for i := range gradients {
		if gradients[i].NumberColors <= 0 {
			return nil, fmt.Errorf("%w: gradient %d has %d colors", misc.ErrInvalidArgument, i, gradients[i].NumberColors)
		}
		colors = append(colors, gradients[i].generate()...)
	}
	return New(colors)
}
