package status_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sonyremote/internal/status"
)

func TestBoard(t *testing.T) {
	t.Run("shows the latest message", func(t *testing.T) {
		board := status.NewBoard()
		defer board.Close()

		_, ok := board.Current()
		assert.False(t, ok)

		board.Report(status.Event{Kind: status.KindStarted, Message: "Sending Mute"})
		board.Report(status.Event{Kind: status.KindFailed, Severity: status.SeverityError, Message: "Error: boom"})

		message, ok := board.Current()
		require.True(t, ok)
		assert.Equal(t, "Error: boom", message.Text)
		assert.Equal(t, status.SeverityError, message.Severity)
		assert.True(t, message.ExpiresAt.IsZero())
	})

	t.Run("message clears after its display duration", func(t *testing.T) {
		board := status.NewBoard()
		defer board.Close()

		board.Report(status.Event{Kind: status.KindSucceeded, Message: "Sent Mute", Duration: 20 * time.Millisecond})

		message, ok := board.Current()
		require.True(t, ok)
		assert.False(t, message.ExpiresAt.IsZero())

		assert.Eventually(t, func() bool {
			_, ok := board.Current()
			return !ok
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("superseded timer does not blank a newer message", func(t *testing.T) {
		board := status.NewBoard()
		defer board.Close()

		board.Report(status.Event{Kind: status.KindSucceeded, Message: "first", Duration: 20 * time.Millisecond})
		board.Report(status.Event{Kind: status.KindSucceeded, Message: "second", Duration: time.Hour})

		time.Sleep(60 * time.Millisecond)

		message, ok := board.Current()
		require.True(t, ok)
		assert.Equal(t, "second", message.Text)
	})

	t.Run("sticky message survives an older timer", func(t *testing.T) {
		board := status.NewBoard()
		defer board.Close()

		board.Report(status.Event{Kind: status.KindSucceeded, Message: "done", Duration: 10 * time.Millisecond})
		board.Report(status.Event{Kind: status.KindFailed, Message: "failed"})

		time.Sleep(40 * time.Millisecond)

		message, ok := board.Current()
		require.True(t, ok)
		assert.Equal(t, "failed", message.Text)
	})

	t.Run("tolerates rapid concurrent reports", func(t *testing.T) {
		board := status.NewBoard()
		defer board.Close()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				board.Report(status.Event{Kind: status.KindProgress, Message: "step", Duration: time.Millisecond})
			}()
		}
		wg.Wait()
		board.Report(status.Event{Kind: status.KindSucceeded, Message: "last", Duration: time.Hour})

		time.Sleep(20 * time.Millisecond)
		message, ok := board.Current()
		require.True(t, ok)
		assert.Equal(t, "last", message.Text)
	})
}
