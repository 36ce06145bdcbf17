package mandelbrot

import (
	"fmt"
	"image/color"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

// ColorPolicy turns an escape count into a color.
type ColorPolicy interface {
	// Check reports whether Resolve can index table for every count in [0, MaxIterations].
	Check(table *colortable.Table) error
	Resolve(n int32, table *colortable.Table) color.RGBA
}

// WrapPolicy reuses the table cyclically so bands repeat every table length.
// Points that escape immediately or never escape get EscapeColor.
type WrapPolicy struct {
	EscapeColor   color.RGBA
	MaxIterations int32
}

func (p WrapPolicy) Check(table *colortable.Table) error {
	if table == nil || table.Len() == 0 {
		return fmt.Errorf("%w: wrap coloring needs a color table", misc.ErrInvalidArgument)
	}
	return nil
}

func (p WrapPolicy) Resolve(n int32, table *colortable.Table) color.RGBA {
	if n <= 0 || n >= p.MaxIterations {
		return p.EscapeColor
	}
	return table.At(int(n) % table.Len())
}

// DirectPolicy indexes the table with the escape count itself.
type DirectPolicy struct {
	MaxIterations int32
}

func (p DirectPolicy) Check(table *colortable.Table) error {
	if table == nil || table.Len() < int(p.MaxIterations)+1 {
		return fmt.Errorf("%w: direct coloring needs %d colors", misc.ErrInvalidArgument, p.MaxIterations+1)
	}
	return nil
}

func (p DirectPolicy) Resolve(n int32, table *colortable.Table) color.RGBA {
	return table.At(int(n))
}

// NewColorPolicy returns the policy named by settings.Coloring.
func NewColorPolicy(settings Settings) (ColorPolicy, error) {
	switch settings.Coloring {
	case WrapColoring:
		return WrapPolicy{EscapeColor: settings.EscapeColor, MaxIterations: settings.MaxIterations}, nil
	case DirectColoring:
		return DirectPolicy{MaxIterations: settings.MaxIterations}, nil
	}
	return nil, fmt.Errorf("%w: unknown coloring %q", misc.ErrInvalidArgument, settings.Coloring)
}
