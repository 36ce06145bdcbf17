package terminal

import (
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/mandelbrot"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	table, err := colortable.New([]color.RGBA{{R: 200}, {G: 200}, {B: 200}, {R: 100, G: 100}})
	if err != nil {
		t.Fatalf("colortable.New: %v", err)
	}
	m, err := NewModel(mandelbrot.DefaultSettings(), table, 40, 11)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestViewLayout(t *testing.T) {
	g := NewWithT(t)
	m := newModel(t)

	lines := strings.Split(m.View(), "\n")
	g.Expect(lines).To(HaveLen(11))
	for _, line := range lines[:10] {
		g.Expect(strings.Count(line, upperHalfBlock)).To(Equal(40))
	}
	g.Expect(lines[10]).To(ContainSubstring("center (-0.75, 0)"))
}

func TestEngineFollowsCellGrid(t *testing.T) {
	g := NewWithT(t)
	m := newModel(t)

	settings := m.mandelbrot.Settings()
	g.Expect(settings.Width).To(Equal(40))
	g.Expect(settings.Height).To(Equal(20))
	g.Expect(m.Viewport().Height()).To(BeNumerically("~", 1.75, 1e-6))
}

func TestKeysMoveTheView(t *testing.T) {
	g := NewWithT(t)
	m := newModel(t)
	before := append([]uint8(nil), m.buffer.Pix...)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	g.Expect(cmd).To(BeNil())
	g.Expect(m.Viewport().CenterX()).To(BeNumerically("<", -0.75))

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	g.Expect(m.Viewport().Width()).To(Equal(float32(1.75)))
	g.Expect(m.buffer.Pix).NotTo(Equal(before))

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	g.Expect(m.Viewport().CenterX()).To(Equal(float32(-0.75)))
	g.Expect(m.buffer.Pix).To(Equal(before))
}

func TestWheelZooms(t *testing.T) {
	g := NewWithT(t)
	m := newModel(t)

	_, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	g.Expect(m.Viewport().Width()).To(Equal(float32(1.75)))

	_, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	g.Expect(m.Viewport().Width()).To(Equal(float32(3.5)))

	_, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	g.Expect(m.Viewport().Width()).To(Equal(float32(3.5)))
}

func TestQuit(t *testing.T) {
	g := NewWithT(t)
	m := newModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(cmd()).To(Equal(tea.Quit()))
	g.Expect(m.Closed()).To(BeTrue())
}

func TestNewModelRejectsBadArguments(t *testing.T) {
	g := NewWithT(t)
	table, err := colortable.New([]color.RGBA{{R: 1}})
	g.Expect(err).NotTo(HaveOccurred())

	_, err = NewModel(mandelbrot.DefaultSettings(), table, 0, 10)
	g.Expect(err).To(MatchError(misc.ErrInvalidArgument))
	_, err = NewModel(mandelbrot.DefaultSettings(), table, 10, 1)
	g.Expect(err).To(MatchError(misc.ErrInvalidArgument))
	_, err = NewModel(mandelbrot.DefaultSettings(), nil, 10, 10)
	g.Expect(err).To(MatchError(misc.ErrInvalidArgument))
}
