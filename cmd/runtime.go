package cmd

import (
	"context"
	"fmt"

	"sonyremote/internal/bravia"
	"sonyremote/internal/sequencer"
	"sonyremote/internal/settings"
	"sonyremote/internal/status"
)

// remote bundles what every device command needs
type remote struct {
	store     *settings.Store
	endpoints settings.Provider
	client    *bravia.BraviaClient
	sequencer *sequencer.Sequencer
}

// openRemote opens the settings store and builds the client and sequencer
// from the loaded configuration. reporters receive every batch event.
func openRemote(reporters ...status.Reporter) (*remote, error) {
	store, err := settings.OpenStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}

	options := []bravia.Option{
		bravia.WithTimeout(cfg.Remote.Timeout),
		bravia.WithDebug(verbose),
	}
	if testFlag {
		options = append(options, bravia.WithTransport(&bravia.SimulatedTransport{}))
	}
	client := bravia.NewBraviaClient(options...)

	endpoints := settings.Overlay{Base: store, Override: flagEndpoint()}

	reporters = append(reporters, status.NewLogReporter(log))
	seq := sequencer.New(client, endpoints,
		sequencer.WithSettleDelay(cfg.Remote.SettleDelay),
		sequencer.WithDisplayDuration(cfg.Remote.DisplayDuration),
		sequencer.WithPolicy(cfg.Policy()),
		sequencer.WithReporter(status.Multi(reporters)),
	)

	return &remote{
		store:     store,
		endpoints: endpoints,
		client:    client,
		sequencer: seq,
	}, nil
}

func (r *remote) endpoint(ctx context.Context) (bravia.Endpoint, error) {
	return r.endpoints.Endpoint(ctx)
}

func (r *remote) Close() error {
	return r.store.Close()
}
