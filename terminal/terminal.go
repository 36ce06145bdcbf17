// Package terminal draws the set in a terminal with half block characters.
package terminal

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/mandelbrot"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/viewport"
)

// The upper half takes the foreground color, the lower half the background.
const upperHalfBlock = "▀"

var (
	status = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	failed = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var keys = map[string]viewport.Key{
	"up":    viewport.KeyUp,
	"down":  viewport.KeyDown,
	"left":  viewport.KeyLeft,
	"right": viewport.KeyRight,
	"+":     viewport.KeyZoomIn,
	"=":     viewport.KeyZoomIn,
	"-":     viewport.KeyZoomOut,
	"r":     viewport.KeyReset,
}

// Model is a bubbletea model showing one frame per viewport change.
type Model struct {
	buffer     *image.RGBA
	columns    int
	elapsed    time.Duration
	err        error
	frame      string
	mandelbrot *mandelbrot.Mandelbrot
	rows       int
	table      *colortable.Table
	translator *viewport.Translator
}

// NewModel sizes the engine to columns x 2*(rows-1) pixels; the last row holds
// the status line. The plane height follows the pixel aspect ratio.
func NewModel(settings mandelbrot.Settings, table *colortable.Table, columns int, rows int) (*Model, error) {
	if columns <= 0 || rows <= 1 {
		return nil, fmt.Errorf("%w: terminal of %dx%d cells is too small", misc.ErrInvalidArgument, columns, rows)
	}
	if table == nil {
		return nil, fmt.Errorf("%w: nil color table", misc.ErrInvalidArgument)
	}

	imageRows := rows - 1
	settings.Width = columns
	settings.Height = 2 * imageRows
	if settings.SetWidth > 0 {
		settings.SetHeight = settings.SetWidth * float32(settings.Height) / float32(settings.Width)
	}

	engine, err := mandelbrot.NewMandelbrot(settings)
	if err != nil {
		return nil, err
	}
	verified := engine.Settings()
	view, err := verified.NewViewport()
	if err != nil {
		return nil, err
	}

	m := &Model{
		buffer:     engine.NewPixelBuffer(),
		columns:    columns,
		mandelbrot: engine,
		rows:       imageRows,
		table:      table,
		translator: viewport.NewTranslator(view),
	}
	m.render()
	return m, m.err
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.translator.Handle(viewport.CloseEvent())
			return m, tea.Quit
		}
		if key, ok := keys[msg.String()]; ok && m.translator.Handle(viewport.KeyEvent(key)) {
			m.render()
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		var dy float64
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			dy = 1
		case tea.MouseButtonWheelDown:
			dy = -1
		}
		if m.translator.Handle(viewport.WheelEvent(dy)) {
			m.render()
		}
	}
	return m, nil
}

func (m *Model) View() string {
	if m.err != nil {
		return failed.Render(m.err.Error()) + "\n"
	}
	return m.frame + "\n" + status.Render(m.statusLine())
}

// Viewport is the view being shown.
func (m *Model) Viewport() *viewport.Viewport {
	return m.translator.Viewport()
}

// Closed reports whether a quit key was pressed.
func (m *Model) Closed() bool {
	return m.translator.Closed()
}

func (m *Model) statusLine() string {
	view := m.translator.Viewport()
	return fmt.Sprintf("center (%.6g, %.6g)  extent %.3gx%.3g  %s  arrows pan  +/- zoom  r reset  q quit",
		view.CenterX(), view.CenterY(), view.Width(), view.Height(), m.elapsed.Round(time.Microsecond))
}

func (m *Model) render() {
	startTime := time.Now()
	if err := m.mandelbrot.Render(m.translator.Viewport(), m.table, m.buffer); err != nil {
		m.err = err
		return
	}
	m.elapsed = time.Since(startTime)

	var b strings.Builder
	for row := 0; row < m.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for column := 0; column < m.columns; column++ {
			top := m.buffer.RGBAAt(column, 2*row)
			bottom := m.buffer.RGBAAt(column, 2*row+1)
			b.WriteString(cell(top, bottom))
		}
	}
	m.frame = b.String()
}

func cell(top color.RGBA, bottom color.RGBA) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(top))).
		Background(lipgloss.Color(hex(bottom))).
		Render(upperHalfBlock)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Run shows model full screen until a quit key is pressed.
func Run(model *Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}
