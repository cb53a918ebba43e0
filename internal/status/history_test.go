package status_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sonyremote/internal/status"
)

func TestHistory(t *testing.T) {
	at := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)

	t.Run("follows a batch through its events", func(t *testing.T) {
		history := status.NewHistory(5)

		history.Report(status.Event{BatchID: "a", Kind: status.KindStarted, Tokens: []string{"12"}, Commands: []string{"Num1", "Num2"}, Time: at})
		history.Report(status.Event{BatchID: "a", Kind: status.KindProgress, Step: 1, Total: 2, Time: at})

		record, ok := history.Get("a")
		require.True(t, ok)
		assert.Equal(t, status.KindProgress, record.State)
		assert.Equal(t, 1, record.Sent)

		history.Report(status.Event{BatchID: "a", Kind: status.KindProgress, Step: 2, Total: 2, Err: errors.New("boom"), Time: at})
		history.Report(status.Event{BatchID: "a", Kind: status.KindFailed, Message: "Error: boom", Err: errors.New("boom"), Time: at.Add(time.Second)})

		record, ok = history.Get("a")
		require.True(t, ok)
		assert.Equal(t, status.KindFailed, record.State)
		assert.Equal(t, 1, record.Sent)
		assert.Equal(t, "boom", record.Error)
		assert.Equal(t, at, record.Started)
		require.NotNil(t, record.Finished)
		assert.Equal(t, at.Add(time.Second), *record.Finished)
	})

	t.Run("fills tokens for a batch turned away before it started", func(t *testing.T) {
		history := status.NewHistory(5)

		history.Report(status.Event{
			BatchID:  "busy",
			Kind:     status.KindCanceled,
			Tokens:   []string{"38.1", "Enter"},
			Commands: []string{"Num3", "Num8", "Dot", "Num1", "Enter"},
			Err:      errors.New("another command sequence is in progress"),
			Time:     at,
		})

		record, ok := history.Get("busy")
		require.True(t, ok)
		assert.Equal(t, status.KindCanceled, record.State)
		assert.Equal(t, []string{"38.1", "Enter"}, record.Tokens)
		assert.Equal(t, []string{"Num3", "Num8", "Dot", "Num1", "Enter"}, record.Commands)
		assert.Zero(t, record.Sent)
		require.NotNil(t, record.Finished)
	})

	t.Run("leaves finished out of running records", func(t *testing.T) {
		history := status.NewHistory(5)
		history.Report(status.Event{BatchID: "a", Kind: status.KindStarted, Tokens: []string{"Home"}, Commands: []string{"Home"}, Time: at})

		record, ok := history.Get("a")
		require.True(t, ok)
		assert.Nil(t, record.Finished)

		data, err := json.Marshal(record)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "finished")
	})

	t.Run("evicts the oldest batches", func(t *testing.T) {
		history := status.NewHistory(2)
		for _, id := range []string{"a", "b", "c"} {
			history.Report(status.Event{BatchID: id, Kind: status.KindStarted, Time: at})
		}

		_, ok := history.Get("a")
		assert.False(t, ok)

		recent := history.Recent()
		require.Len(t, recent, 2)
		assert.Equal(t, "c", recent[0].ID)
		assert.Equal(t, "b", recent[1].ID)
	})

	t.Run("ignores events without a batch", func(t *testing.T) {
		history := status.NewHistory(0)
		history.Report(status.Event{Kind: status.KindFailed})
		assert.Empty(t, history.Recent())
	})
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	reporter := status.NewLogReporter(zerolog.New(&buf))

	reporter.Report(status.Event{
		BatchID:  "a",
		Kind:     status.KindFailed,
		Severity: status.SeverityError,
		Message:  "Error: boom",
		Err:      errors.New("boom"),
	})

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"batch_id":"a"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"message":"Error: boom"`)
}

func TestMulti(t *testing.T) {
	var got []string
	multi := status.Multi{
		status.ReporterFunc(func(e status.Event) { got = append(got, "one:"+e.Message) }),
		nil,
		status.ReporterFunc(func(e status.Event) { got = append(got, "two:"+e.Message) }),
	}

	multi.Report(status.Event{Message: "hi"})

	assert.Equal(t, []string{"one:hi", "two:hi"}, got)
}

func TestHistoryTrack(t *testing.T) {
	h := status.NewHistory(5)
	now := time.Now()

	h.Track("a", []string{"Enter"}, []string{"Enter"}, now)
	record, ok := h.Get("a")
	require.True(t, ok)
	assert.Equal(t, status.KindQueued, record.State)
	assert.Equal(t, []string{"Enter"}, record.Commands)

	h.Report(status.Event{BatchID: "a", Kind: status.KindSucceeded, Message: "Sent Enter", Time: now})
	h.Track("a", nil, nil, now)

	record, _ = h.Get("a")
	assert.Equal(t, status.KindSucceeded, record.State)
	assert.Equal(t, []string{"Enter"}, record.Tokens)
}
