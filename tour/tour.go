// Package tour renders a sequence of zoom transitions to numbered image files.
package tour

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/mandelbrot"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/viewport"
)

const (
	PNG  = "png"
	JPEG = "jpg"

	configFileName = "settings.yaml"
	logFileName    = "tour.log"
)

type Settings struct {
	logger bslogger.Logger

	Format      string       `yaml:"format"`
	RunName     string       `yaml:"run_name"`
	SavePath    string       `yaml:"save_path"`
	Transitions []Transition `yaml:"transitions"`
}

func DefaultSettings() Settings {
	return Settings{
		Format: PNG,
		Transitions: []Transition{
			{
				StartX:     -0.75,
				StartY:     0,
				StartWidth: 3.5,
				EndX:       -0.7436447,
				EndY:       0.1318252,
				EndWidth:   0.001,
				ZoomStep:   1.25,
			},
		},
	}
}

func (s *Settings) Verify() error {
	s.logger = misc.NewLogger("TourSettings")

	s.Format = strings.ToLower(strings.TrimPrefix(s.Format, "."))
	switch s.Format {
	case PNG, JPEG:
	case "jpeg":
		s.Format = JPEG
	case "":
		s.Format = PNG
	default:
		s.logger.Infof("Unknown image format %q. Using %s.", s.Format, PNG)
		s.Format = PNG
	}
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		var err error
		s.SavePath, err = os.Getwd()
		if err != nil {
			misc.CheckError(fmt.Errorf("finding the working directory for save_path - %w", err), s.logger, misc.Warning)
			s.SavePath = "."
		}
	}
	if len(s.Transitions) == 0 {
		s.Transitions = DefaultSettings().Transitions
	}

	// Verify each of the transitions
	for i := 0; i < len(s.Transitions); i++ {
		misc.CheckError(s.Transitions[i].Verify(), s.logger, misc.Warning)
	}
	return nil
}

func (s *Settings) String() string {
	output := "\nTour settings\n"
	output += fmt.Sprintf("Output: %s (%s)\n", filepath.Join(s.SavePath, s.RunName), s.Format)
	for i := range s.Transitions {
		output += fmt.Sprintf("Transition %d: %s\n", i, s.Transitions[i].String())
	}
	return output
}

// RunPath is the directory the frames are written to.
func (s *Settings) RunPath() string {
	return filepath.Join(s.SavePath, s.RunName)
}

type Tour struct {
	logger     bslogger.Logger
	mandelbrot *mandelbrot.Mandelbrot
	settings   Settings
	table      *colortable.Table
}

func NewTour(settings Settings, engine *mandelbrot.Mandelbrot, table *colortable.Table) (*Tour, error) {
	if engine == nil || table == nil {
		return nil, fmt.Errorf("%w: a tour needs an engine and a color table", misc.ErrInvalidArgument)
	}
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	tour := &Tour{
		logger:     misc.NewLogger("Tour"),
		mandelbrot: engine,
		settings:   settings,
		table:      table,
	}
	tour.logger.Debug(settings.String())
	return tour, nil
}

func (t *Tour) Settings() Settings {
	return t.settings
}

// Frames expands every transition in order.
func (t *Tour) Frames() ([]Frame, error) {
	var frames []Frame
	for i := range t.settings.Transitions {
		transitionFrames, err := t.settings.Transitions[i].Frames()
		if err != nil {
			return nil, err
		}
		frames = append(frames, transitionFrames...)
	}
	return frames, nil
}

// Run renders every frame into RunPath as 0001.png, 0002.png and so on, and
// stores config next to them when it is not empty. It stops between frames once
// ctx is done and returns the number of frames written.
func (t *Tour) Run(ctx context.Context, config []byte) (int, error) {
	frames, err := t.Frames()
	if err != nil {
		return 0, err
	}

	// Create directory to store files for this run
	runPath := t.settings.RunPath()
	if err := os.MkdirAll(runPath, os.ModePerm); err != nil {
		return 0, fmt.Errorf("creating run folder: %w", err)
	}

	// Copy the settings to the directory so the run can be duplicated in the future
	if len(config) > 0 {
		if _, err := misc.WriteFile(filepath.Join(runPath, configFileName), config); err != nil {
			return 0, err
		}
	}

	// Create a log file to record the run
	logFile, err := os.Create(filepath.Join(runPath, logFileName))
	if err != nil {
		t.logger.Warningf("Unable to create log file: %s", err)
	} else {
		defer logFile.Close()
		t.logger = misc.NewFileLogger("Tour", logFile)
	}

	engineSettings := t.mandelbrot.Settings()
	aspect := engineSettings.SetHeight / engineSettings.SetWidth
	buffer := t.mandelbrot.NewPixelBuffer()

	startTime := time.Now()
	written := 0
	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			t.logger.Warningf("Stopping after %d of %d frames: %s", written, len(frames), err)
			return written, err
		}

		view, err := viewport.New(frame.CenterX, frame.CenterY, frame.Width, frame.Width*aspect, engineSettings.MoveFactor, engineSettings.ZoomFactor)
		if err != nil {
			return written, err
		}
		if err := t.mandelbrot.Render(view, t.table, buffer); err != nil {
			return written, err
		}

		path := filepath.Join(runPath, fmt.Sprintf("%04d.%s", i+1, t.settings.Format))
		if err := misc.SaveImage(path, buffer); err != nil {
			return written, err
		}
		written++
		t.logger.Infof("Saved image to %s", path)
	}

	t.logger.Debugf("Done rendering %d frames in %s", written, time.Since(startTime))
	return written, nil
}
