package contract

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	infoColor = color.New(color.FgCyan)
	warnColor = color.New(color.FgYellow, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

// LogInfo prints an informational message to stderr.
func LogInfo(format string, args ...any) {
	fmt.Fprintln(os.Stderr, infoColor.Sprintf(format, args...))
}

// LogWarn prints a warning with an optional error to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, warnColor.Sprintf("Warning: %s: %v", msg, err))
		return
	}
	fmt.Fprintln(os.Stderr, warnColor.Sprintf("Warning: %s", msg))
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintln(os.Stderr, failColor.Sprintf("Error: %s: %v", msg, err))
	os.Exit(1)
}

// FloatFormatter returns a formatter rendering floats with the given
// number of decimal places.
func FloatFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}

// SelectOutputFile returns the file handle for output based on the provided
// path, falling back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}
