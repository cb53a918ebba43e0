package status

import (
	"sync"
	"time"
)

// Message is what a Board currently shows
type Message struct {
	BatchID   string    `json:"batch_id,omitempty"`
	Kind      Kind      `json:"kind"`
	Severity  Severity  `json:"severity"`
	Text      string    `json:"text"`
	Time      time.Time `json:"time"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Board keeps the latest message only. A message with a display duration
// clears itself when it expires, unless a newer message replaced it first.
type Board struct {
	mu         sync.Mutex
	current    Message
	visible    bool
	generation uint64
	timer      *time.Timer
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{}
}

// Report implements Reporter
func (b *Board) Report(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.generation++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}

	at := e.Time
	if at.IsZero() {
		at = time.Now()
	}
	b.current = Message{
		BatchID:  e.BatchID,
		Kind:     e.Kind,
		Severity: e.Severity,
		Text:     e.Message,
		Time:     at,
	}
	b.visible = true

	if e.Duration > 0 {
		b.current.ExpiresAt = at.Add(e.Duration)
		generation := b.generation
		b.timer = time.AfterFunc(e.Duration, func() {
			b.expire(generation)
		})
	}
}

// expire clears the board if nothing replaced the message that armed the timer.
// A timer that already fired when Stop was called still lands here.
func (b *Board) expire(generation uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if generation != b.generation {
		return
	}
	b.current = Message{}
	b.visible = false
	b.timer = nil
}

// Current returns the visible message, if any
func (b *Board) Current() (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.visible
}

// Close stops a pending expiry timer
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
