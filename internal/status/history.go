package status

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultHistorySize is used when NewHistory gets a non-positive size
const DefaultHistorySize = 50

// Record summarises one batch as seen through its events
type Record struct {
	ID       string     `json:"id"`
	Tokens   []string   `json:"tokens"`
	Commands []string   `json:"commands"`
	Sent     int        `json:"sent"`
	State    Kind       `json:"state"`
	Message  string     `json:"message"`
	Error    string     `json:"error,omitempty"`
	Started  time.Time  `json:"started"`
	Finished *time.Time `json:"finished,omitempty"`
}

// KindQueued marks a record for a batch accepted but not started yet. The
// sequencer never emits it.
const KindQueued Kind = "queued"

// History keeps the most recent batches, evicting the least recently touched
type History struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *Record]
}

// NewHistory creates a history holding up to size batches
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[string, *Record](size)
	return &History{cache: cache}
}

// Report implements Reporter
func (h *History) Report(e Event) {
	if e.BatchID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	record, ok := h.cache.Get(e.BatchID)
	if !ok {
		record = &Record{ID: e.BatchID, Started: e.Time}
		h.cache.Add(e.BatchID, record)
	}

	switch e.Kind {
	case KindStarted:
		record.Tokens = e.Tokens
		record.Commands = e.Commands
		record.Started = e.Time
	case KindProgress:
		if e.Err == nil {
			record.Sent = e.Step
		}
	}

	record.State = e.Kind
	record.Message = e.Message
	if e.Kind.Terminal() {
		// Batches turned away by the guard never emit a started event
		if len(record.Tokens) == 0 {
			record.Tokens = e.Tokens
			record.Commands = e.Commands
		}
		finished := e.Time
		record.Finished = &finished
		if e.Err != nil {
			record.Error = e.Err.Error()
		}
	}
}

// Track records a batch before its first event so it can be looked up while
// it waits for the sequencer
func (h *History) Track(id string, tokens, commands []string, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cache.Contains(id) {
		return
	}
	h.cache.Add(id, &Record{
		ID:       id,
		Tokens:   tokens,
		Commands: commands,
		State:    KindQueued,
		Message:  "Queued",
		Started:  at,
	})
}

// Get returns a copy of the record for a batch
func (h *History) Get(id string) (Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	record, ok := h.cache.Peek(id)
	if !ok {
		return Record{}, false
	}
	return *record, true
}

// Recent returns copies of the stored records, newest first
func (h *History) Recent() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	keys := h.cache.Keys()
	records := make([]Record, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if record, ok := h.cache.Peek(keys[i]); ok {
			records = append(records, *record)
		}
	}
	return records
}
