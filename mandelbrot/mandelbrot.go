// Package mandelbrot computes escape-time images of the Mandelbrot set.
//
// For every pixel the engine maps (px, py) into the plane region described by a
// viewport, iterates z = z^2 + c starting from z0 = c in float32 until |z|
// leaves the escape radius or MaxIterations is reached, and colors the count
// through a ColorPolicy. Pixels are iterated LaneWidth at a time; each lane
// keeps iterating only while it is active, so the counts are the same as the
// ones EscapeTime returns pixel by pixel.
//
// A Mandelbrot keeps a scratch buffer between frames and must not be used from
// several goroutines at once.
package mandelbrot

import (
	"fmt"
	"image"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/viewport"
)

// MaxPixels bounds the resolution an engine reserves buffers for.
const MaxPixels = 1 << 26

type Mandelbrot struct {
	counts   []int32
	logger   bslogger.Logger
	policy   ColorPolicy
	radius2  float32
	settings Settings
}

func NewMandelbrot(settings Settings) (*Mandelbrot, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	if settings.Width > MaxPixels/settings.Height {
		return nil, fmt.Errorf("%w: %dx%d pixels requested, limit is %d", misc.ErrAllocationFailure, settings.Width, settings.Height, MaxPixels)
	}
	policy, err := NewColorPolicy(settings)
	if err != nil {
		return nil, err
	}

	radius := settings.EscapeRadius()
	mandelbrot := &Mandelbrot{
		counts:   make([]int32, settings.Width*settings.Height),
		logger:   misc.NewLogger("Mandelbrot"),
		policy:   policy,
		radius2:  float32(radius * radius),
		settings: settings,
	}
	mandelbrot.logger.Debug(settings.String())

	return mandelbrot, nil
}

// Settings returns the verified settings the engine runs with.
func (m *Mandelbrot) Settings() Settings {
	return m.settings
}

// SetColorPolicy replaces the policy picked from Settings.Coloring.
func (m *Mandelbrot) SetColorPolicy(policy ColorPolicy) {
	m.policy = policy
}

// NewPixelBuffer allocates a buffer Render accepts. Callers keep it for the
// lifetime of the frame loop.
func (m *Mandelbrot) NewPixelBuffer() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, m.settings.Width, m.settings.Height))
}

type transform struct {
	left  float32
	top   float32
	stepX float32
	stepY float32
}

func (m *Mandelbrot) transform(view *viewport.Viewport) transform {
	return transform{
		left:  view.CenterX() - float32(0.5*view.Width()),
		top:   view.CenterY() - float32(0.5*view.Height()),
		stepX: view.Width() / float32(m.settings.Width),
		stepY: view.Height() / float32(m.settings.Height),
	}
}

func (t *transform) x(px int) float32 {
	return t.left + float32(float32(px)*t.stepX)
}

func (t *transform) y(py int) float32 {
	return t.top + float32(float32(py)*t.stepY)
}

// PlaneCoordinate returns c for the pixel (px, py).
func (m *Mandelbrot) PlaneCoordinate(view *viewport.Viewport, px int, py int) (float32, float32) {
	t := m.transform(view)
	return t.x(px), t.y(py)
}

// EscapeTime returns the escape count of c = x0 + y0i, iterating one pixel at a time.
func (m *Mandelbrot) EscapeTime(x0 float32, y0 float32) int32 {
	return escapeScalar(x0, y0, m.radius2, m.settings.MaxIterations)
}

// EscapeTimes writes the escape count of every pixel of view into counts, row
// major, iterating LaneWidth pixels at a time.
func (m *Mandelbrot) EscapeTimes(view *viewport.Viewport, counts []int32) error {
	if err := m.checkCounts(view, counts); err != nil {
		return err
	}

	width, height := m.settings.Width, m.settings.Height
	t := m.transform(view)

	for py := 0; py < height; py++ {
		var y0 lanes
		row := t.y(py)
		for l := range y0 {
			y0[l] = row
		}

		for px := 0; px < width; px += LaneWidth {
			var x0 lanes
			var live mask
			for l := 0; l < LaneWidth && px+l < width; l++ {
				x0[l] = t.x(px + l)
				live[l] = true
			}

			n := escapeLanes(&x0, &y0, live, m.radius2, m.settings.MaxIterations)
			for l := 0; l < LaneWidth && px+l < width; l++ {
				counts[py*width+px+l] = n[l]
			}
		}
	}

	return nil
}

// EscapeTimesScalar is EscapeTimes computed one pixel at a time.
func (m *Mandelbrot) EscapeTimesScalar(view *viewport.Viewport, counts []int32) error {
	if err := m.checkCounts(view, counts); err != nil {
		return err
	}

	width, height := m.settings.Width, m.settings.Height
	t := m.transform(view)

	for py := 0; py < height; py++ {
		y0 := t.y(py)
		for px := 0; px < width; px++ {
			counts[py*width+px] = m.EscapeTime(t.x(px), y0)
		}
	}

	return nil
}

func (m *Mandelbrot) checkCounts(view *viewport.Viewport, counts []int32) error {
	if view == nil {
		return fmt.Errorf("%w: nil viewport", misc.ErrInvalidArgument)
	}
	if len(counts) != m.settings.Width*m.settings.Height {
		return fmt.Errorf("%w: need %d counts, got %d", misc.ErrInvalidArgument, m.settings.Width*m.settings.Height, len(counts))
	}
	return nil
}

// Render overwrites every pixel of buffer with the image of view. The buffer
// must come from NewPixelBuffer or have the same bounds.
func (m *Mandelbrot) Render(view *viewport.Viewport, table *colortable.Table, buffer *image.RGBA) error {
	if table == nil {
		return fmt.Errorf("%w: nil color table", misc.ErrInvalidArgument)
	}
	if buffer == nil {
		return fmt.Errorf("%w: nil pixel buffer", misc.ErrInvalidArgument)
	}
	if buffer.Rect != image.Rect(0, 0, m.settings.Width, m.settings.Height) {
		return fmt.Errorf("%w: pixel buffer bounds %v, expected %dx%d", misc.ErrInvalidArgument, buffer.Rect, m.settings.Width, m.settings.Height)
	}
	if err := m.policy.Check(table); err != nil {
		return err
	}

	if err := m.EscapeTimes(view, m.counts); err != nil {
		return err
	}
	m.colorize(table, buffer)
	return nil
}

func (m *Mandelbrot) colorize(table *colortable.Table, buffer *image.RGBA) {
	width, height := m.settings.Width, m.settings.Height
	for py := 0; py < height; py++ {
		row := buffer.Pix[py*buffer.Stride : py*buffer.Stride+width*4]
		for px := 0; px < width; px++ {
			c := m.policy.Resolve(m.counts[py*width+px], table)
			pixel := row[px*4 : px*4+4 : px*4+4]
			pixel[0] = c.R
			pixel[1] = c.G
			pixel[2] = c.B
			pixel[3] = 255
		}
	}
}
