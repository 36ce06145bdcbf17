package viewport

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

func newDefault(t *testing.T) *Viewport {
	t.Helper()
	view, err := New(-0.75, 0, 3.5, 3.5, 0.05, 0.5)
	if err != nil {
		t.Fatalf("new viewport: %v", err)
	}
	return view
}

func TestNewRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name                   string
		width, height          float32
		moveFactor, zoomFactor float32
	}{
		{"zero width", 0, 1, 0.05, 0.5},
		{"negative height", 1, -1, 0.05, 0.5},
		{"zero move factor", 1, 1, 0, 0.5},
		{"zoom factor of one", 1, 1, 0.05, 1},
		{"zoom factor above one", 1, 1, 0.05, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			_, err := New(0, 0, tt.width, tt.height, tt.moveFactor, tt.zoomFactor)
			g.Expect(err).To(MatchError(misc.ErrInvalidArgument))
		})
	}
}

func TestPanScalesWithExtent(t *testing.T) {
	g := NewWithT(t)
	view := newDefault(t)

	view.Pan(Right)
	g.Expect(view.CenterX()).To(BeNumerically("~", -0.75+0.05*3.5, 1e-6))
	view.Pan(Down)
	g.Expect(view.CenterY()).To(BeNumerically("~", 0.05*3.5, 1e-6))

	view.Zoom(In)
	before := view.CenterX()
	view.Pan(Left)
	g.Expect(before - view.CenterX()).To(BeNumerically("~", 0.05*1.75, 1e-6))
}

func TestPanRoundTrip(t *testing.T) {
	g := NewWithT(t)
	view := newDefault(t)
	x, y := view.CenterX(), view.CenterY()

	view.Pan(Right)
	view.Pan(Left)
	g.Expect(view.CenterX()).To(BeNumerically("~", x, 1e-6))

	view.Pan(Up)
	view.Pan(Down)
	g.Expect(view.CenterY()).To(BeNumerically("~", y, 1e-6))

	g.Expect(view.Width()).To(Equal(float32(3.5)))
	g.Expect(view.Height()).To(Equal(float32(3.5)))
}

func TestZoom(t *testing.T) {
	g := NewWithT(t)
	view := newDefault(t)
	x, y, w, h := view.CenterX(), view.CenterY(), view.Width(), view.Height()

	view.Zoom(In)
	g.Expect(view.Width()).To(BeNumerically("<", w))
	g.Expect(view.Height()).To(BeNumerically("<", h))
	g.Expect(view.CenterX()).To(Equal(x))
	g.Expect(view.CenterY()).To(Equal(y))

	view.Zoom(Out)
	g.Expect(view.Width()).To(BeNumerically("~", w, 1e-6))
	g.Expect(view.Height()).To(BeNumerically("~", h, 1e-6))
}

func TestUnknownDirectionsAreIgnored(t *testing.T) {
	g := NewWithT(t)
	view := newDefault(t)
	before := *view

	view.Pan(Direction(42))
	g.Expect(view.Zoom(ZoomDirection(7))).To(BeFalse())
	g.Expect(*view).To(Equal(before))
}

func TestZoomKeepsExtentInRange(t *testing.T) {
	g := NewWithT(t)
	view := newDefault(t)

	changed := 0
	for i := 0; i < 200; i++ {
		if view.Zoom(In) {
			changed++
		}
	}
	g.Expect(changed).To(BeNumerically("<", 200))
	g.Expect(view.Width()).To(BeNumerically(">", 0))
	g.Expect(view.Height()).To(BeNumerically(">", 0))

	// Every step taken in is undone on the way out.
	for i := 0; i < changed; i++ {
		g.Expect(view.Zoom(Out)).To(BeTrue())
	}
	g.Expect(view.Width()).To(BeNumerically("~", 3.5, 1e-5))

	for i := 0; i < 200; i++ {
		view.Zoom(Out)
	}
	g.Expect(math.IsInf(float64(view.Width()), 0)).To(BeFalse())
	g.Expect(math.IsInf(float64(view.Height()), 0)).To(BeFalse())
	g.Expect(view.Width()).To(BeNumerically("<=", math.MaxFloat32))
}

func TestNewRejectsInfiniteExtent(t *testing.T) {
	g := NewWithT(t)
	_, err := New(0, 0, float32(math.Inf(1)), 1, 0.05, 0.5)
	g.Expect(err).To(MatchError(misc.ErrInvalidArgument))
}

func TestReset(t *testing.T) {
	g := NewWithT(t)
	view := newDefault(t)
	before := *view

	view.Pan(Up)
	view.Zoom(In)
	view.Zoom(In)
	view.Reset()
	g.Expect(*view).To(Equal(before))
}
