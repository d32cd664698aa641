package jobs

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// slogCronLogger routes cron's own diagnostics (recovered panics, skipped runs)
// to slog.
type slogCronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = slogCronLogger{}

func newCronLogger(logger *slog.Logger) cron.Logger {
	return slogCronLogger{logger: logger}
}

// Info is cron's chatty scheduling trace, so it goes to debug.
func (l slogCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
