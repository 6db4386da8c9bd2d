package fileio

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// Reporter receives human-readable diagnostics for recoverable read failures.
type Reporter interface {
	Report(message string)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(message string)

// Report calls the wrapped function.
func (reporterFunc ReporterFunc) Report(message string) {
	reporterFunc(message)
}

// LoggerReporter writes diagnostics as red warnings through a zap logger.
type LoggerReporter struct {
	logger  *zap.Logger
	painter *color.Color
}

// NewLoggerReporter constructs a LoggerReporter. A nil logger discards diagnostics.
// Messages are colored only when stderr is a terminal.
func NewLoggerReporter(logger *zap.Logger) *LoggerReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	painter := color.New(color.FgRed)
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		painter.EnableColor()
	} else {
		painter.DisableColor()
	}
	return &LoggerReporter{logger: logger, painter: painter}
}

// Report logs the message at warn level.
func (reporter *LoggerReporter) Report(message string) {
	reporter.logger.Warn(reporter.painter.Sprint(message))
}

var (
	_ Reporter = ReporterFunc(nil)
	_ Reporter = (*LoggerReporter)(nil)
)
