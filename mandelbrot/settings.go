package mandelbrot

import (
	"fmt"
	"image/color"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/viewport"
)

const (
	WrapColoring   = "wrap"
	DirectColoring = "direct"
)

// Settings is the fixed configuration of an engine and of the viewport it starts with.
type Settings struct {
	logger bslogger.Logger

	CenterX       float32    `yaml:"center_x"`
	CenterY       float32    `yaml:"center_y"`
	Coloring      string     `yaml:"coloring"`
	EscapeColor   color.RGBA `yaml:"escape_color"`
	Height        int        `yaml:"height"`
	MaxIterations int32      `yaml:"max_iterations"`
	MoveFactor    float32    `yaml:"move_factor"`
	RadiusFactor  float32    `yaml:"radius_factor"`
	SetHeight     float32    `yaml:"set_height"`
	SetWidth      float32    `yaml:"set_width"`
	TableSize     int        `yaml:"table_size"`
	Width         int        `yaml:"width"`
	ZoomFactor    float32    `yaml:"zoom_factor"`
}

func DefaultSettings() Settings {
	return Settings{
		CenterX:       -0.75,
		CenterY:       0,
		Coloring:      WrapColoring,
		EscapeColor:   color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Height:        1080,
		MaxIterations: 255,
		MoveFactor:    0.05,
		RadiusFactor:  4,
		SetHeight:     3.5,
		SetWidth:      3.5,
		TableSize:     16,
		Width:         1080,
		ZoomFactor:    0.5,
	}
}

// Verify replaces out of range values with their defaults.
// Only an unknown coloring policy is reported as an error.
func (s *Settings) Verify() error {
	s.logger = misc.NewLogger("MandelbrotSettings")
	defaults := DefaultSettings()

	if s.Coloring == "" {
		s.Coloring = defaults.Coloring
	}
	if s.Coloring != WrapColoring && s.Coloring != DirectColoring {
		return fmt.Errorf("%w: unknown coloring %q (expected %q or %q)", misc.ErrInvalidArgument, s.Coloring, WrapColoring, DirectColoring)
	}
	if s.EscapeColor == (color.RGBA{}) {
		s.EscapeColor = defaults.EscapeColor
	}
	s.EscapeColor.A = 255
	if s.Height <= 0 {
		s.Height = defaults.Height
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = defaults.MaxIterations
	}
	if !(s.MoveFactor > 0 && s.MoveFactor < 1) {
		s.MoveFactor = defaults.MoveFactor
	}
	if !(s.RadiusFactor > 0) {
		s.RadiusFactor = defaults.RadiusFactor
	}
	if !(s.SetHeight > 0) {
		s.SetHeight = defaults.SetHeight
	}
	if !(s.SetWidth > 0) {
		s.SetWidth = defaults.SetWidth
	}
	if s.TableSize <= 0 {
		s.TableSize = defaults.TableSize
	}
	if s.Width <= 0 {
		s.Width = defaults.Width
	}
	if !(s.ZoomFactor > 0 && s.ZoomFactor < 1) {
		s.ZoomFactor = defaults.ZoomFactor
	}

	// Direct coloring indexes the table with every possible count
	if s.Coloring == DirectColoring && s.TableSize != int(s.MaxIterations)+1 {
		s.logger.Infof("Setting TableSize to %d since direct coloring needs one color per iteration count.", s.MaxIterations+1)
		s.TableSize = int(s.MaxIterations) + 1
	}

	return nil
}

// EscapeRadius is RMAX. It follows the screen width, not the analytic bound of 2.
func (s *Settings) EscapeRadius() float32 {
	return s.RadiusFactor * float32(s.Width)
}

// NewViewport returns the startup viewport described by the settings.
func (s *Settings) NewViewport() (*viewport.Viewport, error) {
	return viewport.New(s.CenterX, s.CenterY, s.SetWidth, s.SetHeight, s.MoveFactor, s.ZoomFactor)
}

func (s *Settings) String() string {
	output := "\nMandelbrot settings\n"
	output += fmt.Sprintf("Resolution: %dx%d\n", s.Width, s.Height)
	output += fmt.Sprintf("Max Iterations: %d\n", s.MaxIterations)
	output += fmt.Sprintf("Escape Radius: %g\n", s.EscapeRadius())
	output += fmt.Sprintf("Coloring: %s (table size %d)\n", s.Coloring, s.TableSize)
	output += fmt.Sprintf("Center: (%g, %g) Extent: %gx%g\n", s.CenterX, s.CenterY, s.SetWidth, s.SetHeight)
	output += fmt.Sprintf("Move Factor: %g Zoom Factor: %g\n", s.MoveFactor, s.ZoomFactor)
	return output
}
