// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sequencer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"sonyremote/internal/bravia"
	"sonyremote/internal/logger"
	"sonyremote/internal/status"
)

const (
	// DefaultSettleDelay is the pause the TV needs between two commands.
	// At 300ms repeated arrow keys get dropped.
	DefaultSettleDelay = 600 * time.Millisecond

	// DefaultDisplayDuration is how long a success message stays up
	DefaultDisplayDuration = 3 * time.Second
)

// Transmitter sends one command to the TV
type Transmitter interface {
	Transmit(ctx context.Context, command string, endpoint bravia.Endpoint) error
}

// EndpointProvider supplies the current device endpoint. It is read once per batch.
type EndpointProvider interface {
	Endpoint(ctx context.Context) (bravia.Endpoint, error)
}

// Clock abstracts time for pacing
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// StepError reports the command that ended a batch
type StepError struct {
	Index   int
	Total   int
	Command string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("command %d of %d (%s): %v", e.Index+1, e.Total, e.Command, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Report describes one batch. Sent counts commands the TV accepted.
type Report struct {
	ID       string
	Tokens   []string
	Commands []string
	Sent     int
	Started  time.Time
	Finished time.Time
	Err      error
}

// Succeeded reports whether every command was accepted
func (r *Report) Succeeded() bool {
	return r.Err == nil && r.Sent == len(r.Commands)
}

// Sequencer transmits batches one command at a time with a settle delay
// between commands, and at most one batch at a time.
type Sequencer struct {
	transmitter Transmitter
	endpoints   EndpointProvider
	reporter    status.Reporter
	clock       Clock
	logger      zerolog.Logger

	settleDelay     time.Duration
	displayDuration time.Duration
	guard           *guard

	// lastSent is when the previous network exchange finished; guarded by guard
	lastSent time.Time
}

// Option configures a Sequencer
type Option func(*Sequencer)

// WithSettleDelay sets the minimum gap between two transmissions
func WithSettleDelay(d time.Duration) Option {
	return func(s *Sequencer) {
		s.settleDelay = d
	}
}

// WithDisplayDuration sets how long success messages stay up
func WithDisplayDuration(d time.Duration) Option {
	return func(s *Sequencer) {
		s.displayDuration = d
	}
}

// WithPolicy sets the overlapping batch policy
func WithPolicy(policy Policy) Option {
	return func(s *Sequencer) {
		s.guard = newGuard(policy)
	}
}

// WithReporter sets where progress goes
func WithReporter(reporter status.Reporter) Option {
	return func(s *Sequencer) {
		s.reporter = reporter
	}
}

// WithClock replaces the wall clock, for tests
func WithClock(clock Clock) Option {
	return func(s *Sequencer) {
		s.clock = clock
	}
}

// New creates a sequencer sending through transmitter to the endpoint endpoints supplies
func New(transmitter Transmitter, endpoints EndpointProvider, options ...Option) *Sequencer {
	s := &Sequencer{
		transmitter:     transmitter,
		endpoints:       endpoints,
		reporter:        status.Discard,
		clock:           realClock{},
		logger:          logger.With("sequencer"),
		settleDelay:     DefaultSettleDelay,
		displayDuration: DefaultDisplayDuration,
		guard:           newGuard(PolicyQueue),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Prepare assigns an id to a batch and expands it without sending anything
func (s *Sequencer) Prepare(tokens []string) *Report {
	return &Report{
		ID:       uuid.NewString(),
		Tokens:   tokens,
		Commands: Expand(tokens),
	}
}

// Run prepares and executes a batch
func (s *Sequencer) Run(ctx context.Context, tokens []string) (*Report, error) {
	report := s.Prepare(tokens)
	return report, s.Execute(ctx, report)
}

// Execute sends a prepared batch and blocks until it finishes. It stops at
// the first command that fails and returns a *StepError for it. The
// returned error is also stored in report.Err.
func (s *Sequencer) Execute(ctx context.Context, report *Report) error {
	report.Started = s.clock.Now()

	runCtx, release, err := s.guard.enter(ctx)
	if err != nil {
		return s.finish(report, err)
	}
	defer release()

	endpoint, err := s.endpoints.Endpoint(runCtx)
	if err != nil {
		return s.finish(report, fmt.Errorf("failed to read device settings: %w", err))
	}

	total := len(report.Commands)
	s.emit(status.Event{
		BatchID:  report.ID,
		Kind:     status.KindStarted,
		Severity: status.SeverityInfo,
		Message:  fmt.Sprintf("Sending %s", describe(report.Tokens)),
		Tokens:   report.Tokens,
		Commands: report.Commands,
		Total:    total,
	})

	for i, command := range report.Commands {
		if err := s.settle(runCtx); err != nil {
			return s.finish(report, interruption(runCtx, err))
		}

		began := s.clock.Now()
		err := s.transmitter.Transmit(runCtx, command, endpoint)
		done := s.clock.Now()
		if reachedNetwork(err) {
			s.lastSent = done
		}

		s.emit(s.progressEvent(report, i, command, err, done.Sub(began)))

		if err != nil {
			if cause := context.Cause(runCtx); cause != nil {
				return s.finish(report, cause)
			}
			return s.finish(report, &StepError{Index: i, Total: total, Command: command, Err: err})
		}
		report.Sent++
	}

	return s.finish(report, nil)
}

// settle waits until the settle delay has passed since the last exchange,
// which may have belonged to the previous batch
func (s *Sequencer) settle(ctx context.Context) error {
	if s.lastSent.IsZero() || s.settleDelay <= 0 {
		return ctx.Err()
	}
	wait := s.settleDelay - s.clock.Now().Sub(s.lastSent)
	if wait <= 0 {
		return ctx.Err()
	}
	return s.clock.Sleep(ctx, wait)
}

func (s *Sequencer) progressEvent(report *Report, i int, command string, err error, elapsed time.Duration) status.Event {
	event := status.Event{
		BatchID:  report.ID,
		Kind:     status.KindProgress,
		Severity: status.SeverityInfo,
		Message:  fmt.Sprintf("Sent %s (%d/%d)", command, i+1, len(report.Commands)),
		Command:  command,
		Step:     i + 1,
		Total:    len(report.Commands),
		Err:      err,
		Elapsed:  elapsed,
	}
	if err != nil {
		event.Severity = status.SeverityError
		event.Message = fmt.Sprintf("Failed to send %s (%d/%d)", command, i+1, len(report.Commands))
	}
	return event
}

// finish records the outcome and emits the terminal event
func (s *Sequencer) finish(report *Report, err error) error {
	report.Finished = s.clock.Now()
	report.Err = err

	event := status.Event{
		BatchID:  report.ID,
		Tokens:   report.Tokens,
		Commands: report.Commands,
		Step:     report.Sent,
		Total:    len(report.Commands),
		Err:      err,
		Elapsed:  report.Finished.Sub(report.Started),
	}

	switch {
	case err == nil:
		event.Kind = status.KindSucceeded
		event.Severity = status.SeverityInfo
		event.Message = fmt.Sprintf("Sent %s", describe(report.Tokens))
		event.Duration = s.displayDuration
	case isStepError(err):
		event.Kind = status.KindFailed
		event.Severity = status.SeverityError
		event.Message = fmt.Sprintf("Error: %v", err)
	case errors.Is(err, ErrBusy), errors.Is(err, ErrPreempted),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		event.Kind = status.KindCanceled
		event.Severity = status.SeverityWarning
		event.Message = fmt.Sprintf("Not sent %s: %v", describe(report.Tokens), err)
		event.Duration = s.displayDuration
	default:
		event.Kind = status.KindFailed
		event.Severity = status.SeverityError
		event.Message = fmt.Sprintf("Error: %v", err)
	}

	s.emit(event)
	return err
}

// A request timeout surfaces as a step failure even though it matches
// context.DeadlineExceeded.
func isStepError(err error) bool {
	var step *StepError
	return errors.As(err, &step)
}

func (s *Sequencer) emit(event status.Event) {
	event.Time = s.clock.Now()
	s.reporter.Report(event)
}

// interruption explains why a wait ended early
func interruption(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return err
}

// reachedNetwork reports whether a transmission got as far as the TV
func reachedNetwork(err error) bool {
	switch bravia.Classify(err) {
	case bravia.ResultSuccess, bravia.ResultDeviceRejected, bravia.ResultNetworkFailure:
		return true
	default:
		return false
	}
}

func describe(tokens []string) string {
	if len(tokens) == 0 {
		return "nothing"
	}
	return strings.Join(tokens, " ")
}
