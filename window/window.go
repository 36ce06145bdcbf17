// Package window shows the set in a desktop window.
package window

import (
	"bytes"
	"fmt"
	"image"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/config"
	"github.com/AndrewGlebovski/Mandelbrot-Set/mandelbrot"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/viewport"
)

// Held keys repeat after repeatDelay ticks, every repeatInterval ticks.
const (
	repeatDelay    = 15
	repeatInterval = 4
)

type binding struct {
	key   ebiten.Key
	event viewport.Key
}

var bindings = []binding{
	{ebiten.KeyArrowUp, viewport.KeyUp},
	{ebiten.KeyArrowDown, viewport.KeyDown},
	{ebiten.KeyArrowLeft, viewport.KeyLeft},
	{ebiten.KeyArrowRight, viewport.KeyRight},
	{ebiten.KeyEqual, viewport.KeyZoomIn},
	{ebiten.KeyNumpadAdd, viewport.KeyZoomIn},
	{ebiten.KeyMinus, viewport.KeyZoomOut},
	{ebiten.KeyNumpadSubtract, viewport.KeyZoomOut},
	{ebiten.KeyR, viewport.KeyReset},
}

type Game struct {
	buffer     *image.RGBA
	dirty      bool
	face       *text.GoTextFace
	logger     bslogger.Logger
	mandelbrot *mandelbrot.Mandelbrot
	offscreen  *ebiten.Image
	settings   config.WindowSettings
	table      *colortable.Table
	translator *viewport.Translator
}

// NewGame loads the overlay font and prepares the frame buffers. A configured
// font file that cannot be read is an error.
func NewGame(engine *mandelbrot.Mandelbrot, table *colortable.Table, settings config.WindowSettings) (*Game, error) {
	if engine == nil || table == nil {
		return nil, fmt.Errorf("%w: a window needs an engine and a color table", misc.ErrInvalidArgument)
	}
	face, err := loadFace(settings.FontFile, settings.FontSize)
	if err != nil {
		return nil, err
	}

	engineSettings := engine.Settings()
	view, err := engineSettings.NewViewport()
	if err != nil {
		return nil, err
	}

	return &Game{
		buffer:     engine.NewPixelBuffer(),
		dirty:      true,
		face:       face,
		logger:     misc.NewLogger("Window"),
		mandelbrot: engine,
		offscreen:  ebiten.NewImage(engineSettings.Width, engineSettings.Height),
		settings:   settings,
		table:      table,
		translator: viewport.NewTranslator(view),
	}, nil
}

func loadFace(fontFile string, size float64) (*text.GoTextFace, error) {
	data := goregular.TTF
	if fontFile != "" {
		var err error
		data, err = misc.ReadFile(fontFile)
		if err != nil {
			return nil, err
		}
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: font %q: %s", misc.ErrInvalidFormat, fontFile, err)
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}

func pressed(key ebiten.Key) bool {
	if inpututil.IsKeyJustPressed(key) {
		return true
	}
	d := inpututil.KeyPressDuration(key)
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.translator.Handle(viewport.CloseEvent())
	}
	if g.translator.Closed() {
		return ebiten.Termination
	}

	for _, b := range bindings {
		if pressed(b.key) && g.translator.Handle(viewport.KeyEvent(b.event)) {
			g.dirty = true
		}
	}
	if _, dy := ebiten.Wheel(); g.translator.Handle(viewport.WheelEvent(dy)) {
		g.dirty = true
	}

	if g.dirty {
		if err := g.mandelbrot.Render(g.translator.Viewport(), g.table, g.buffer); err != nil {
			return err
		}
		g.offscreen.WritePixels(g.buffer.Pix)
		g.dirty = false
		g.logger.Debugf("Rendered %s", g.translator.Viewport().String())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.offscreen, nil)

	if g.settings.ShowFPS {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, 8)
		op.ColorScale.ScaleWithColor(g.settings.TextColor)
		text.Draw(screen, fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS()), g.face, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	settings := g.mandelbrot.Settings()
	return settings.Width, settings.Height
}

// Run opens the window and blocks until it is closed.
func Run(game *Game) error {
	settings := game.mandelbrot.Settings()
	ebiten.SetWindowSize(settings.Width, settings.Height)
	ebiten.SetWindowTitle(game.settings.Title)
	ebiten.SetWindowClosingHandled(true)
	return ebiten.RunGame(game)
}
