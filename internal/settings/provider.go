// Package settings holds the device endpoint: where the TV is and the key it
// expects. The sequencer reads it at the start of every batch so changes
// apply to the next button press.
package settings

import (
	"context"

	"sonyremote/internal/bravia"
)

// Provider supplies the device endpoint
type Provider interface {
	Endpoint(ctx context.Context) (bravia.Endpoint, error)
}

// Static is a fixed endpoint, typically from command line flags
type Static bravia.Endpoint

// Endpoint implements Provider
func (s Static) Endpoint(context.Context) (bravia.Endpoint, error) {
	return bravia.Endpoint(s), nil
}

// Overlay replaces the fields of Base that are set in Override
type Overlay struct {
	Base     Provider
	Override bravia.Endpoint
}

// Endpoint implements Provider
func (o Overlay) Endpoint(ctx context.Context) (bravia.Endpoint, error) {
	var endpoint bravia.Endpoint
	if o.Base != nil {
		base, err := o.Base.Endpoint(ctx)
		if err != nil {
			return bravia.Endpoint{}, err
		}
		endpoint = base
	}
	if o.Override.Address != "" {
		endpoint.Address = o.Override.Address
	}
	if o.Override.PSK != "" {
		endpoint.PSK = o.Override.PSK
	}
	return endpoint, nil
}

// MaskPSK hides all but the last two characters of a key for display
func MaskPSK(psk string) string {
	if len(psk) <= 2 {
		return "****"
	}
	return "****" + psk[len(psk)-2:]
}
