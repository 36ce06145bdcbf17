package tour

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

// Transition moves the view from one center and width to another, changing the
// width by ZoomStep per frame.
type Transition struct {
	EndWidth   float32 `yaml:"end_width"`
	EndX       float32 `yaml:"end_x"`
	EndY       float32 `yaml:"end_y"`
	StartWidth float32 `yaml:"start_width"`
	StartX     float32 `yaml:"start_x"`
	StartY     float32 `yaml:"start_y"`
	ZoomStep   float32 `yaml:"zoom_step"`
}

// Frame is the view of one image of a tour. Height follows Width through the
// aspect ratio of the render settings.
type Frame struct {
	CenterX float32
	CenterY float32
	Width   float32
}

func (ts *Transition) Verify() error {
	if ts.StartX < -4 || ts.StartX > 4 {
		ts.StartX = 0
	}
	if ts.StartY < -4 || ts.StartY > 4 {
		ts.StartY = 0
	}
	if ts.EndX < -4 || ts.EndX > 4 {
		ts.EndX = 0
	}
	if ts.EndY < -4 || ts.EndY > 4 {
		ts.EndY = 0
	}
	if !(ts.StartWidth > 0) {
		ts.StartWidth = 3.5
	}
	if !(ts.EndWidth > 0) {
		ts.EndWidth = 3.5
	}
	if !(ts.ZoomStep > 1) {
		ts.ZoomStep = 1.1
	}
	return nil
}

func (ts *Transition) zoomingIn() bool {
	return ts.EndWidth < ts.StartWidth
}

// Steps is the number of ZoomStep changes needed to get from StartWidth to EndWidth.
func (ts *Transition) Steps() int {
	ratio := math.Abs(math.Log(float64(ts.EndWidth) / float64(ts.StartWidth)))
	return int(math.Ceil(ratio/math.Log(float64(ts.ZoomStep)) - 1e-9))
}

// FrameCount includes the first and the last frame.
func (ts *Transition) FrameCount() int {
	return ts.Steps() + 1
}

// Frames expands the transition. The center eases out while zooming in and
// eases in while zooming out; the width changes geometrically.
func (ts *Transition) Frames() ([]Frame, error) {
	if !(ts.StartWidth > 0 && ts.EndWidth > 0 && ts.ZoomStep > 1) {
		return nil, fmt.Errorf("%w: transition %s", misc.ErrInvalidArgument, ts.String())
	}

	steps := ts.Steps()
	if steps == 0 {
		return []Frame{{CenterX: ts.EndX, CenterY: ts.EndY, Width: ts.EndWidth}}, nil
	}

	easing := ease.InExpo
	if ts.zoomingIn() {
		easing = ease.OutExpo
	}
	duration := float32(steps)
	tweenX := gween.New(ts.StartX, ts.EndX, duration, easing)
	tweenY := gween.New(ts.StartY, ts.EndY, duration, easing)
	tweenWidth := gween.New(logf(ts.StartWidth), logf(ts.EndWidth), duration, ease.Linear)

	frames := make([]Frame, 0, steps+1)
	for i := 0; i <= steps; i++ {
		x, _ := tweenX.Set(float32(i))
		y, _ := tweenY.Set(float32(i))
		w, _ := tweenWidth.Set(float32(i))
		frames = append(frames, Frame{CenterX: x, CenterY: y, Width: float32(math.Exp(float64(w)))})
	}
	// The last frame lands exactly on the end view
	frames[steps].Width = ts.EndWidth
	return frames, nil
}

func (ts *Transition) String() string {
	return fmt.Sprintf("{Transition (%g, %g) width %g -> (%g, %g) width %g step %g}",
		ts.StartX, ts.StartY, ts.StartWidth, ts.EndX, ts.EndY, ts.EndWidth, ts.ZoomStep)
}

func logf(v float32) float32 {
	return float32(math.Log(float64(v)))
}
