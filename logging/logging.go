// Package logging builds the debug logger. The terminal belongs to the game,
// so log output goes to a file under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

const logFile = "seabattle-local/debug.log"

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Formatter:       log.LogfmtFormatter,
	})
}

// OpenFile opens (appending) the debug log in the XDG state directory and
// returns a logger for it along with the file to close on exit.
func OpenFile(level log.Level) (*log.Logger, io.Closer, error) {
	path, err := xdg.StateFile(logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}
