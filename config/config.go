// Package config loads and saves the YAML configuration of every command.
package config

import (
	"fmt"
	"image/color"

	"github.com/BrugadaSyndrome/bslogger"
	"gopkg.in/yaml.v3"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/mandelbrot"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/rpc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/tour"
)

type WindowSettings struct {
	FontFile  string     `yaml:"font_file"`
	FontSize  float64    `yaml:"font_size"`
	ShowFPS   bool       `yaml:"show_fps"`
	TextColor color.RGBA `yaml:"text_color"`
	Title     string     `yaml:"title"`
}

type TerminalSettings struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

type ServerSettings struct {
	Address   string `yaml:"address"`
	Transport string `yaml:"transport"`
}

type Config struct {
	logger bslogger.Logger

	Mandelbrot  mandelbrot.Settings   `yaml:"mandelbrot"`
	Palette     []colortable.Gradient `yaml:"palette"`
	PaletteFile string                `yaml:"palette_file"`
	Server      ServerSettings        `yaml:"server"`
	Terminal    TerminalSettings      `yaml:"terminal"`
	Tour        tour.Settings         `yaml:"tour"`
	Window      WindowSettings        `yaml:"window"`
}

func Default() Config {
	return Config{
		Mandelbrot: mandelbrot.DefaultSettings(),
		Palette: []colortable.Gradient{
			{StartColor: color.RGBA{R: 0, G: 7, B: 100, A: 255}, EndColor: color.RGBA{R: 32, G: 107, B: 203, A: 255}, NumberColors: 4},
			{StartColor: color.RGBA{R: 32, G: 107, B: 203, A: 255}, EndColor: color.RGBA{R: 237, G: 255, B: 255, A: 255}, NumberColors: 4},
			{StartColor: color.RGBA{R: 237, G: 255, B: 255, A: 255}, EndColor: color.RGBA{R: 255, G: 170, B: 0, A: 255}, NumberColors: 4},
			{StartColor: color.RGBA{R: 255, G: 170, B: 0, A: 255}, EndColor: color.RGBA{R: 0, G: 2, B: 0, A: 255}, NumberColors: 4},
		},
		PaletteFile: "assets/palette.txt",
		Server: ServerSettings{
			Address:   ":51000",
			Transport: rpc.TCP,
		},
		Terminal: TerminalSettings{
			Columns: 80,
			Rows:    24,
		},
		Tour: tour.DefaultSettings(),
		Window: WindowSettings{
			FontFile:  "",
			FontSize:  24,
			ShowFPS:   true,
			TextColor: color.RGBA{R: 0x00, G: 0xE2, B: 0x00, A: 0xFF},
			Title:     "Mandelbrot3000",
		},
	}
}

// Load reads path on top of Default and verifies the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := misc.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %s", misc.ErrInvalidFormat, path, err)
	}
	if err := cfg.Verify(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = misc.WriteFile(path, data)
	return err
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Verify replaces out of range values with their defaults. Unknown enum values
// are reported as errors.
func (c *Config) Verify() error {
	c.logger = misc.NewLogger("Config")
	defaults := Default()

	if err := c.Mandelbrot.Verify(); err != nil {
		return err
	}
	if c.PaletteFile == "" {
		c.PaletteFile = defaults.PaletteFile
	}

	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	switch c.Server.Transport {
	case rpc.TCP, rpc.HTTP:
	case "":
		c.Server.Transport = defaults.Server.Transport
	default:
		return fmt.Errorf("%w: unknown transport %q (expected %q or %q)", misc.ErrInvalidArgument, c.Server.Transport, rpc.TCP, rpc.HTTP)
	}

	if c.Terminal.Columns <= 0 {
		c.Terminal.Columns = defaults.Terminal.Columns
	}
	if c.Terminal.Rows <= 1 {
		c.Terminal.Rows = defaults.Terminal.Rows
	}

	if !(c.Window.FontSize > 0) {
		c.logger.Infof("Font size %g is not positive. Using %g.", c.Window.FontSize, defaults.Window.FontSize)
		c.Window.FontSize = defaults.Window.FontSize
	}
	if c.Window.TextColor.A == 0 {
		c.Window.TextColor.A = 255
	}
	if c.Window.Title == "" {
		c.Window.Title = defaults.Window.Title
	}

	return nil
}

func (c *Config) String() string {
	output := "\nConfig\n"
	output += fmt.Sprintf("Palette File: %s\n", c.PaletteFile)
	output += fmt.Sprintf("Server: %s (%s)\n", c.Server.Address, c.Server.Transport)
	output += fmt.Sprintf("Terminal: %dx%d\n", c.Terminal.Columns, c.Terminal.Rows)
	output += fmt.Sprintf("Window: %q font %s (%g)\n", c.Window.Title, c.Window.FontFile, c.Window.FontSize)
	output += c.Mandelbrot.String()
	return output
}
