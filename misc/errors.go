package misc

import (
	"errors"
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
)

const (
	Fatal Severity = iota
	Error
	Warning
	Info
	Debug
)

type Severity int

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "Fatal"
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	case Info:
		return "Info"
	case Debug:
		return "Debug"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Error kinds shared by the color table loader, the engine and the front ends.
// Callers wrap them with context and match with errors.Is.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrAllocationFailure = errors.New("allocation failure")
	ErrInvalidArgument   = errors.New("invalid argument")
)

func CheckError(err error, logger bslogger.Logger, severity Severity) {
	if err != nil {
		switch severity {
		case Fatal:
			logger.Fatal(err.Error())
		case Error:
			logger.Error(err.Error())
		case Warning:
			logger.Warning(err.Error())
		case Info:
			logger.Info(err.Error())
		case Debug:
			logger.Debug(err.Error())
		default:
			logger.Fatal(err.Error())
		}
	}
}
