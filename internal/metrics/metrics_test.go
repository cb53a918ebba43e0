package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sonyremote/internal/bravia"
	"sonyremote/internal/sequencer"
	"sonyremote/internal/settings"
	"sonyremote/internal/status"
)

func TestReport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Report(status.Event{BatchID: "a", Kind: status.KindStarted})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchesInFlight))

	m.Report(status.Event{BatchID: "a", Kind: status.KindProgress, Elapsed: 20 * time.Millisecond})
	m.Report(status.Event{BatchID: "a", Kind: status.KindProgress, Err: &bravia.NetworkError{Err: errors.New("reset")}})
	m.Report(status.Event{BatchID: "a", Kind: status.KindFailed, Elapsed: time.Second})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("network_failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchesTotal.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BatchesInFlight))

	// rejected before starting
	m.Report(status.Event{BatchID: "b", Kind: status.KindCanceled, Err: sequencer.ErrBusy})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchesTotal.WithLabelValues("canceled")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BatchesInFlight))
}

func TestSequencerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	transport := &bravia.SimulatedTransport{}
	client := bravia.NewBraviaClient(bravia.WithTransport(transport))
	seq := sequencer.New(client,
		settings.Static{Address: "192.168.1.100", PSK: "0000"},
		sequencer.WithSettleDelay(0),
		sequencer.WithReporter(m),
	)

	_, err := seq.Run(context.Background(), []string{"12.3", "Enter"})
	require.NoError(t, err)

	_, err = seq.Run(context.Background(), []string{"Bogus"})
	require.Error(t, err)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("unknown_command")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchesTotal.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchesTotal.WithLabelValues("failed")))
	assert.Equal(t, 5, transport.Requests())

	count, err := testutil.GatherAndCount(reg, "sonyremote_batch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
