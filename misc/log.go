package misc

import (
	"fmt"
	"os"

	"github.com/BrugadaSyndrome/bslogger"
)

var (
	verbosity = bslogger.Normal
	logFile   *os.File
)

// NewLogger returns a named logger using the process wide verbosity and log file.
func NewLogger(name string) bslogger.Logger {
	return bslogger.NewLogger(name, verbosity, logFile)
}

func SetVerbosity(level string) error {
	switch level {
	case "minimal":
		verbosity = bslogger.Minimal
	case "normal":
		verbosity = bslogger.Normal
	case "all":
		verbosity = bslogger.All
	default:
		return fmt.Errorf("%w: unknown verbosity %q", ErrInvalidArgument, level)
	}
	return nil
}

// SetLogFile mirrors every log line into file. Passing nil disables it.
func SetLogFile(file *os.File) {
	logFile = file
}

// NewFileLogger is NewLogger with its own log file.
func NewFileLogger(name string, file *os.File) bslogger.Logger {
	return bslogger.NewLogger(name, verbosity, file)
}
