package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

var (
	configFile  string
	paletteFile string
	verbosity   string

	// snapshot
	snapshotOutput string
	remote         string
	centerX        float32
	centerY        float32
	extent         float32

	// palette, config
	paletteOutput string
	configOutput  string

	// term
	columns int
	rows    int

	// serve
	address   string
	transport string

	// bench
	frameCount int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mandelbrot3000",
		Short: "interactive Mandelbrot set explorer",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return misc.SetVerbosity(verbosity)
		},
		// Default to the window when no command is given
		RunE:         runView,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&paletteFile, "palette", "", "color table file, overrides palette_file")
	rootCmd.PersistentFlags().StringVar(&verbosity, "verbosity", "normal", "log verbosity: minimal, normal or all")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "explore the set in a window",
		RunE:  runView,
	}

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "explore the set in the terminal",
		RunE:  runTerm,
	}
	termCmd.Flags().IntVar(&columns, "columns", 0, "terminal columns, overrides terminal.columns")
	termCmd.Flags().IntVar(&rows, "rows", 0, "terminal rows, overrides terminal.rows")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to a png or jpg file",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "mandelbrot.png", "output image (.png, .jpg)")
	snapshotCmd.Flags().StringVar(&remote, "remote", "", "address of a worker to render the frame")
	snapshotCmd.Flags().Float32Var(&centerX, "center-x", 0, "center x, overrides mandelbrot.center_x")
	snapshotCmd.Flags().Float32Var(&centerY, "center-y", 0, "center y, overrides mandelbrot.center_y")
	snapshotCmd.Flags().Float32Var(&extent, "extent", 0, "plane width, overrides mandelbrot.set_width")

	tourCmd := &cobra.Command{
		Use:   "tour",
		Short: "render the configured zoom transitions to numbered images",
		RunE:  runTour,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "render frames for remote clients",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&address, "address", "", "listen address, overrides server.address")
	serveCmd.Flags().StringVar(&transport, "transport", "", "tcp or http, overrides server.transport")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the vector and scalar loops over a zoom sequence",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frameCount, "frames", 12, "number of zoom steps")

	paletteCmd := &cobra.Command{
		Use:   "palette",
		Short: "generate a color table from the configured gradients",
		RunE:  runPalette,
	}
	paletteCmd.Flags().StringVarP(&paletteOutput, "output", "o", "palette.txt", "output color table")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write the effective configuration as yaml",
		RunE:  runConfig,
	}
	configCmd.Flags().StringVarP(&configOutput, "output", "o", "settings.yaml", "output file")

	rootCmd.AddCommand(viewCmd, termCmd, snapshotCmd, tourCmd, serveCmd, benchCmd, paletteCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
