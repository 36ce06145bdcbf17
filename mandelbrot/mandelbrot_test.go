package mandelbrot

import (
	"image"
	"image/color"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/viewport"
)

// Odd sizes leave a partial group of lanes at the end of every row.
const (
	testWidth  = 203
	testHeight = 157
)

func newEngine(t *testing.T, coloring string) (*Mandelbrot, *viewport.Viewport) {
	t.Helper()
	settings := DefaultSettings()
	settings.Width = testWidth
	settings.Height = testHeight
	settings.Coloring = coloring

	engine, err := NewMandelbrot(settings)
	if err != nil {
		t.Fatalf("NewMandelbrot: %v", err)
	}
	s := engine.Settings()
	view, err := s.NewViewport()
	if err != nil {
		t.Fatalf("NewViewport: %v", err)
	}
	return engine, view
}

func gradientTable(t *testing.T, size int) *colortable.Table {
	t.Helper()
	colors := make([]color.RGBA, size)
	for i := range colors {
		colors[i] = color.RGBA{R: uint8(i), G: uint8(255 - i%256), B: uint8(i * 7), A: 255}
	}
	table, err := colortable.New(colors)
	if err != nil {
		t.Fatalf("colortable.New: %v", err)
	}
	return table
}

func TestEscapeTimeKnownPoints(t *testing.T) {
	g := NewWithT(t)
	engine, _ := newEngine(t, WrapColoring)
	nmax := engine.Settings().MaxIterations
	w := float32(engine.Settings().Width)

	g.Expect(engine.EscapeTime(0, 0)).To(Equal(nmax))
	g.Expect(engine.EscapeTime(-1, 0)).To(Equal(nmax))
	g.Expect(engine.EscapeTime(5*w, 0)).To(Equal(int32(0)))
	g.Expect(engine.EscapeTime(0, -5*w)).To(Equal(int32(0)))
}

func TestEscapeTimeUsesScreenRadius(t *testing.T) {
	g := NewWithT(t)
	engine, _ := newEngine(t, WrapColoring)

	// |c| = 3 is outside the analytic bound but still inside RMAX = 4 * width.
	n := engine.EscapeTime(3, 0)
	g.Expect(n).To(BeNumerically(">", 0))
	g.Expect(n).To(BeNumerically("<", engine.Settings().MaxIterations))
}

func TestPlaneCoordinate(t *testing.T) {
	g := NewWithT(t)
	engine, view := newEngine(t, WrapColoring)

	x0, y0 := engine.PlaneCoordinate(view, 0, 0)
	g.Expect(x0).To(BeNumerically("~", -2.5, 1e-6))
	g.Expect(y0).To(BeNumerically("~", -1.75, 1e-6))

	x1, y1 := engine.PlaneCoordinate(view, 1, 1)
	g.Expect(x1 - x0).To(BeNumerically("~", 3.5/testWidth, 1e-6))
	g.Expect(y1 - y0).To(BeNumerically("~", 3.5/testHeight, 1e-6))
}

func TestLanesMatchScalar(t *testing.T) {
	engine, view := newEngine(t, WrapColoring)
	vector := make([]int32, testWidth*testHeight)
	scalar := make([]int32, testWidth*testHeight)

	moves := []func(){
		func() {},
		func() { view.Zoom(viewport.In) },
		func() { view.Pan(viewport.Up) },
		func() { view.Zoom(viewport.In) },
		func() { view.Pan(viewport.Left) },
		func() { view.Zoom(viewport.In) },
		func() { view.Zoom(viewport.Out) },
	}

	for i, move := range moves {
		g := NewWithT(t)
		move()

		g.Expect(engine.EscapeTimes(view, vector)).To(Succeed())
		g.Expect(engine.EscapeTimesScalar(view, scalar)).To(Succeed())
		g.Expect(vector).To(Equal(scalar), "step %d at %s", i, view)
	}
}

func TestEscapeLanesTail(t *testing.T) {
	g := NewWithT(t)
	var x0, y0 lanes
	var live mask
	for l := 0; l < 3; l++ {
		x0[l] = float32(l) * 0.25
		live[l] = true
	}
	// Lanes past the edge would never escape if they were iterated.
	n := escapeLanes(&x0, &y0, live, 16, 50)

	for l := 0; l < 3; l++ {
		g.Expect(n[l]).To(Equal(escapeScalar(x0[l], y0[l], 16, 50)))
	}
	for l := 3; l < LaneWidth; l++ {
		g.Expect(n[l]).To(Equal(int32(0)))
	}
}

func TestEscapeTimesRejectsBadArguments(t *testing.T) {
	g := NewWithT(t)
	engine, view := newEngine(t, WrapColoring)

	g.Expect(engine.EscapeTimes(nil, make([]int32, testWidth*testHeight))).To(MatchError(misc.ErrInvalidArgument))
	g.Expect(engine.EscapeTimes(view, make([]int32, 10))).To(MatchError(misc.ErrInvalidArgument))
	g.Expect(engine.EscapeTimesScalar(view, nil)).To(MatchError(misc.ErrInvalidArgument))
}

func TestRenderWrapColoring(t *testing.T) {
	g := NewWithT(t)
	engine, view := newEngine(t, WrapColoring)
	table := gradientTable(t, 16)
	buffer := engine.NewPixelBuffer()

	g.Expect(engine.Render(view, table, buffer)).To(Succeed())
	g.Expect(buffer.Bounds()).To(Equal(image.Rect(0, 0, testWidth, testHeight)))

	counts := make([]int32, testWidth*testHeight)
	g.Expect(engine.EscapeTimesScalar(view, counts)).To(Succeed())

	nmax := engine.Settings().MaxIterations
	black := color.RGBA{A: 255}
	sawBlack, sawColor := false, false
	for py := 0; py < testHeight; py++ {
		for px := 0; px < testWidth; px++ {
			n := counts[py*testWidth+px]
			got := buffer.RGBAAt(px, py)
			g.Expect(got.A).To(Equal(uint8(255)))
			if n == 0 || n == nmax {
				g.Expect(got).To(Equal(black))
				sawBlack = true
			} else {
				g.Expect(got).To(Equal(table.At(int(n) % 16)))
				sawColor = true
			}
		}
	}
	g.Expect(sawBlack).To(BeTrue())
	g.Expect(sawColor).To(BeTrue())
}

func TestRenderDirectColoring(t *testing.T) {
	g := NewWithT(t)
	engine, view := newEngine(t, DirectColoring)
	nmax := engine.Settings().MaxIterations
	g.Expect(engine.Settings().TableSize).To(Equal(int(nmax) + 1))

	buffer := engine.NewPixelBuffer()
	g.Expect(engine.Render(view, gradientTable(t, 16), buffer)).To(MatchError(misc.ErrInvalidArgument))

	table := gradientTable(t, int(nmax)+1)
	g.Expect(engine.Render(view, table, buffer)).To(Succeed())

	counts := make([]int32, testWidth*testHeight)
	g.Expect(engine.EscapeTimes(view, counts)).To(Succeed())
	for py := 0; py < testHeight; py += 13 {
		for px := 0; px < testWidth; px += 11 {
			g.Expect(buffer.RGBAAt(px, py)).To(Equal(table.At(int(counts[py*testWidth+px]))))
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	g := NewWithT(t)
	engine, view := newEngine(t, WrapColoring)
	table := gradientTable(t, 16)
	buffer := engine.NewPixelBuffer()

	g.Expect(engine.Render(view, table, buffer)).To(Succeed())
	first := append([]uint8(nil), buffer.Pix...)

	// Scribble over the buffer; every pixel must be written again.
	for i := range buffer.Pix {
		buffer.Pix[i] = 0x5a
	}
	g.Expect(engine.Render(view, table, buffer)).To(Succeed())
	g.Expect(buffer.Pix).To(Equal(first))
}

func TestRenderRejectsBadArguments(t *testing.T) {
	g := NewWithT(t)
	engine, view := newEngine(t, WrapColoring)
	table := gradientTable(t, 16)
	buffer := engine.NewPixelBuffer()

	g.Expect(engine.Render(nil, table, buffer)).To(MatchError(misc.ErrInvalidArgument))
	g.Expect(engine.Render(view, nil, buffer)).To(MatchError(misc.ErrInvalidArgument))
	g.Expect(engine.Render(view, table, nil)).To(MatchError(misc.ErrInvalidArgument))
	g.Expect(engine.Render(view, table, image.NewRGBA(image.Rect(0, 0, 10, 10)))).To(MatchError(misc.ErrInvalidArgument))
}

func TestWrapPolicy(t *testing.T) {
	g := NewWithT(t)
	table := gradientTable(t, 16)
	escape := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	policy := WrapPolicy{EscapeColor: escape, MaxIterations: 255}

	g.Expect(policy.Check(table)).To(Succeed())
	g.Expect(policy.Check(nil)).To(MatchError(misc.ErrInvalidArgument))
	g.Expect(policy.Resolve(0, table)).To(Equal(escape))
	g.Expect(policy.Resolve(255, table)).To(Equal(escape))
	g.Expect(policy.Resolve(1, table)).To(Equal(table.At(1)))
	g.Expect(policy.Resolve(17, table)).To(Equal(table.At(1)))
	g.Expect(policy.Resolve(254, table)).To(Equal(table.At(254 % 16)))
}

func TestSetColorPolicy(t *testing.T) {
	g := NewWithT(t)
	engine, view := newEngine(t, WrapColoring)
	table := gradientTable(t, int(engine.Settings().MaxIterations)+1)
	buffer := engine.NewPixelBuffer()

	engine.SetColorPolicy(DirectPolicy{MaxIterations: engine.Settings().MaxIterations})
	g.Expect(engine.Render(view, table, buffer)).To(Succeed())

	x0, y0 := engine.PlaneCoordinate(view, 0, 0)
	g.Expect(buffer.RGBAAt(0, 0)).To(Equal(table.At(int(engine.EscapeTime(x0, y0)))))
}

func BenchmarkEscapeTimes(b *testing.B) {
	settings := DefaultSettings()
	engine, err := NewMandelbrot(settings)
	if err != nil {
		b.Fatal(err)
	}
	view, _ := settings.NewViewport()
	counts := make([]int32, settings.Width*settings.Height)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.EscapeTimes(view, counts)
	}
}

func BenchmarkEscapeTimesScalar(b *testing.B) {
	settings := DefaultSettings()
	engine, err := NewMandelbrot(settings)
	if err != nil {
		b.Fatal(err)
	}
	view, _ := settings.NewViewport()
	counts := make([]int32, settings.Width*settings.Height)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.EscapeTimesScalar(view, counts)
	}
}
