package status

import (
	"github.com/rs/zerolog"
)

// LogReporter writes events to a zerolog logger
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates a reporter logging through logger
func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Report implements Reporter
func (r *LogReporter) Report(e Event) {
	var event *zerolog.Event
	switch {
	case e.Kind == KindProgress && e.Err == nil:
		event = r.logger.Debug()
	case e.Severity == SeverityError:
		event = r.logger.Error()
	case e.Severity == SeverityWarning:
		event = r.logger.Warn()
	default:
		event = r.logger.Info()
	}

	event = event.
		Str("batch_id", e.BatchID).
		Str("kind", string(e.Kind))

	if e.Command != "" {
		event = event.Str("command", e.Command).Int("step", e.Step).Int("total", e.Total)
	}
	if len(e.Tokens) > 0 {
		event = event.Strs("tokens", e.Tokens)
	}
	if e.Elapsed > 0 {
		event = event.Dur("elapsed", e.Elapsed)
	}
	if e.Err != nil {
		event = event.Err(e.Err)
	}

	event.Msg(e.Message)
}
