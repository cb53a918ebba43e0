package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Policy decides what happens when a batch arrives while another is running
type Policy string

const (
	// PolicyQueue waits for the running batch to finish
	PolicyQueue Policy = "queue"
	// PolicyReject fails the new batch with ErrBusy
	PolicyReject Policy = "reject"
	// PolicyPreempt cancels the running batch; the newest waiting batch runs next
	PolicyPreempt Policy = "preempt"
)

var (
	// ErrBusy is returned under PolicyReject while a batch is in flight
	ErrBusy = errors.New("another command sequence is in progress")
	// ErrPreempted is returned for a batch cancelled or superseded by a newer one
	ErrPreempted = errors.New("command sequence replaced by a newer one")
)

// ParsePolicy validates a policy name; empty means PolicyQueue
func ParsePolicy(name string) (Policy, error) {
	switch Policy(name) {
	case "", PolicyQueue:
		return PolicyQueue, nil
	case PolicyReject, PolicyPreempt:
		return Policy(name), nil
	default:
		return "", fmt.Errorf("unknown batch policy %q (use queue, reject or preempt)", name)
	}
}

// guard admits at most one batch at a time
type guard struct {
	policy Policy
	sem    *semaphore.Weighted

	mu         sync.Mutex
	cancel     context.CancelCauseFunc
	generation uint64
}

func newGuard(policy Policy) *guard {
	return &guard{
		policy: policy,
		sem:    semaphore.NewWeighted(1),
	}
}

// enter blocks or fails according to the policy. On success it returns a
// context that is cancelled if the batch is preempted, and a release func
// that must be called exactly once.
func (g *guard) enter(ctx context.Context) (context.Context, func(), error) {
	var mine uint64

	switch g.policy {
	case PolicyReject:
		if !g.sem.TryAcquire(1) {
			return nil, nil, ErrBusy
		}

	case PolicyPreempt:
		g.mu.Lock()
		g.generation++
		mine = g.generation
		if g.cancel != nil {
			g.cancel(ErrPreempted)
		}
		g.mu.Unlock()

		if err := g.sem.Acquire(ctx, 1); err != nil {
			return nil, nil, err
		}

	default:
		if err := g.sem.Acquire(ctx, 1); err != nil {
			return nil, nil, err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// A newer preempting batch arrived while this one waited
	if g.policy == PolicyPreempt && g.generation != mine {
		g.sem.Release(1)
		return nil, nil, ErrPreempted
	}

	runCtx, cancel := context.WithCancelCause(ctx)
	g.cancel = cancel

	release := func() {
		g.mu.Lock()
		g.cancel = nil
		g.mu.Unlock()
		cancel(nil)
		g.sem.Release(1)
	}
	return runCtx, release, nil
}
