// Package status carries sequencer progress to whatever is showing it: the
// terminal remote, the HTTP API, the log and the metrics.
package status

import "time"

// Kind is the stage of a batch an event describes
type Kind string

const (
	KindStarted   Kind = "started"
	KindProgress  Kind = "progress"
	KindSucceeded Kind = "succeeded"
	KindFailed    Kind = "failed"
	KindCanceled  Kind = "canceled"
)

// Terminal reports whether no further events follow for the batch
func (k Kind) Terminal() bool {
	return k == KindSucceeded || k == KindFailed || k == KindCanceled
}

// Severity of the message shown to the user
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Event is one notification from the sequencer
type Event struct {
	BatchID  string
	Kind     Kind
	Severity Severity
	Message  string
	// Duration is how long the message stays up; zero keeps it until replaced
	Duration time.Duration

	// Set on started events
	Tokens   []string
	Commands []string

	// Set on progress events, Step counts from 1
	Command string
	Step    int
	Total   int

	Err error
	// Elapsed is the transmission time on progress events and the batch time on terminal ones
	Elapsed time.Duration
	Time    time.Time
}

// Reporter receives events. Implementations must be safe for concurrent use
// and must not block the sequencer for long.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(Event)

// Report implements Reporter
func (f ReporterFunc) Report(e Event) {
	f(e)
}

// Multi fans events out to every reporter in order
type Multi []Reporter

// Report implements Reporter
func (m Multi) Report(e Event) {
	for _, r := range m {
		if r != nil {
			r.Report(e)
		}
	}
}

// Discard drops every event
var Discard Reporter = ReporterFunc(func(Event) {})
