package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/config"
	"github.com/AndrewGlebovski/Mandelbrot-Set/mandelbrot"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
	"github.com/AndrewGlebovski/Mandelbrot-Set/task"
	"github.com/AndrewGlebovski/Mandelbrot-Set/terminal"
	"github.com/AndrewGlebovski/Mandelbrot-Set/tour"
	"github.com/AndrewGlebovski/Mandelbrot-Set/viewport"
	"github.com/AndrewGlebovski/Mandelbrot-Set/window"
	"github.com/AndrewGlebovski/Mandelbrot-Set/worker"
)

// loadConfig reads --config on top of the defaults and applies --palette.
// Startup failures end the process.
func loadConfig() config.Config {
	logger := misc.NewLogger("Mandelbrot3000")

	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		misc.CheckError(err, logger, misc.Fatal)
	} else {
		misc.CheckError(cfg.Verify(), logger, misc.Fatal)
	}
	if paletteFile != "" {
		cfg.PaletteFile = paletteFile
	}
	logger.Debug(cfg.String())
	return cfg
}

func loadTable(cfg config.Config) *colortable.Table {
	logger := misc.NewLogger("Mandelbrot3000")
	table, err := colortable.Load(cfg.PaletteFile, cfg.Mandelbrot.TableSize)
	misc.CheckError(err, logger, misc.Fatal)
	logger.Infof("Loaded color table %s with %d colors", cfg.PaletteFile, table.Len())
	return table
}

func newEngine(settings mandelbrot.Settings) *mandelbrot.Mandelbrot {
	logger := misc.NewLogger("Mandelbrot3000")
	engine, err := mandelbrot.NewMandelbrot(settings)
	misc.CheckError(err, logger, misc.Fatal)
	return engine
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	table := loadTable(cfg)
	engine := newEngine(cfg.Mandelbrot)

	game, err := window.NewGame(engine, table, cfg.Window)
	logger := misc.NewLogger("Mandelbrot3000")
	misc.CheckError(err, logger, misc.Fatal)
	return window.Run(game)
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	table := loadTable(cfg)

	if columns > 0 {
		cfg.Terminal.Columns = columns
	}
	if rows > 0 {
		cfg.Terminal.Rows = rows
	}

	model, err := terminal.NewModel(cfg.Mandelbrot, table, cfg.Terminal.Columns, cfg.Terminal.Rows)
	if err != nil {
		return err
	}
	return terminal.Run(model)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := misc.NewLogger("Snapshot")

	settings := cfg.Mandelbrot
	if cmd.Flags().Changed("center-x") {
		settings.CenterX = centerX
	}
	if cmd.Flags().Changed("center-y") {
		settings.CenterY = centerY
	}
	if cmd.Flags().Changed("extent") {
		if !(extent > 0) {
			return fmt.Errorf("%w: extent must be positive, got %g", misc.ErrInvalidArgument, extent)
		}
		settings.SetHeight = settings.SetHeight * extent / settings.SetWidth
		settings.SetWidth = extent
	}

	if remote != "" {
		client, err := worker.Dial(cfg.Server.Transport, remote)
		if err != nil {
			return err
		}
		defer client.Close()

		frame, err := client.RenderFrame(task.FrameRequest{
			ID:      1,
			CenterX: settings.CenterX,
			CenterY: settings.CenterY,
			Width:   settings.SetWidth,
			Height:  settings.SetHeight,
		})
		if err != nil {
			return err
		}
		img, err := frame.Image()
		if err != nil {
			return err
		}
		if err := misc.SaveImage(snapshotOutput, img); err != nil {
			return err
		}
		logger.Infof("Saved %s from %s to %s", frame.String(), remote, snapshotOutput)
		return nil
	}

	table := loadTable(cfg)
	engine := newEngine(settings)
	verified := engine.Settings()
	view, err := verified.NewViewport()
	if err != nil {
		return err
	}

	startTime := time.Now()
	buffer := engine.NewPixelBuffer()
	if err := engine.Render(view, table, buffer); err != nil {
		return err
	}
	elapsed := time.Since(startTime)

	if err := misc.SaveImage(snapshotOutput, buffer); err != nil {
		return err
	}
	logger.Infof("Rendered %s in %s and saved it to %s", view.String(), elapsed, snapshotOutput)
	return nil
}

func runTour(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	table := loadTable(cfg)
	engine := newEngine(cfg.Mandelbrot)

	t, err := tour.NewTour(cfg.Tour, engine, table)
	if err != nil {
		return err
	}
	// Keep the verified run name in the copy stored next to the frames
	cfg.Tour = t.Settings()
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	ctx, stop := interruptContext()
	defer stop()

	written, err := t.Run(ctx, data)
	logger := misc.NewLogger("Tour")
	logger.Infof("Wrote %d frames to %s", written, cfg.Tour.RunPath())
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	table := loadTable(cfg)
	logger := misc.NewLogger("Serve")

	if address != "" {
		cfg.Server.Address = address
	}
	if transport != "" {
		cfg.Server.Transport = transport
	}

	w, err := worker.NewWorker(cfg.Mandelbrot, table, cfg.Server.Transport, cfg.Server.Address)
	if err != nil {
		return err
	}
	if err := w.Run(); err != nil {
		return err
	}
	if host, port, err := net.SplitHostPort(w.Address()); err == nil && (host == "" || host == "::" || host == "0.0.0.0") {
		if local, err := misc.GetLocalAddress(); err == nil {
			logger.Infof("Clients can reach this worker at %s", net.JoinHostPort(local, port))
		}
	}

	ctx, stop := interruptContext()
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down")
	return w.Stop()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := misc.NewLogger("Bench")
	if frameCount <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", misc.ErrInvalidArgument, frameCount)
	}

	engine := newEngine(cfg.Mandelbrot)
	settings := engine.Settings()
	view, err := settings.NewViewport()
	if err != nil {
		return err
	}

	vector := make([]int32, settings.Width*settings.Height)
	scalar := make([]int32, settings.Width*settings.Height)
	vectorTimes := make([]float64, 0, frameCount)
	scalarTimes := make([]float64, 0, frameCount)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tWIDTH\tVECTOR\tSCALAR\tSPEEDUP\tMISMATCHES")
	for i := 0; i < frameCount; i++ {
		startTime := time.Now()
		if err := engine.EscapeTimes(view, vector); err != nil {
			return err
		}
		vectorTime := time.Since(startTime)

		startTime = time.Now()
		if err := engine.EscapeTimesScalar(view, scalar); err != nil {
			return err
		}
		scalarTime := time.Since(startTime)

		mismatches := 0
		for p := range vector {
			if vector[p] != scalar[p] {
				mismatches++
			}
		}
		if mismatches > 0 {
			logger.Warningf("Frame %d: %d pixels differ between the vector and scalar loops", i, mismatches)
		}

		vectorTimes = append(vectorTimes, float64(vectorTime.Microseconds())/1000)
		scalarTimes = append(scalarTimes, float64(scalarTime.Microseconds())/1000)
		fmt.Fprintf(w, "%d\t%.3g\t%s\t%s\t%.2fx\t%d\n", i, view.Width(), vectorTime.Round(time.Microsecond),
			scalarTime.Round(time.Microsecond), float64(scalarTime)/float64(vectorTime), mismatches)

		view.Zoom(viewport.In)
	}
	w.Flush()
	fmt.Println()

	fmt.Println(asciigraph.Plot(vectorTimes,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("vector loop, ms per frame"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(scalarTimes,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("scalar loop, ms per frame"),
	))
	fmt.Println()
	return nil
}

func runPalette(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := misc.NewLogger("Palette")

	table, err := colortable.Generate(cfg.Palette)
	if err != nil {
		return err
	}
	if err := table.Save(paletteOutput); err != nil {
		return err
	}
	if table.Len() != cfg.Mandelbrot.TableSize {
		logger.Warningf("Generated %d colors but mandelbrot.table_size is %d", table.Len(), cfg.Mandelbrot.TableSize)
	}
	logger.Infof("Saved %d colors to %s", table.Len(), paletteOutput)
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := misc.NewLogger("Config")

	if err := config.Save(configOutput, cfg); err != nil {
		return err
	}
	logger.Infof("Saved configuration to %s", configOutput)
	return nil
}
