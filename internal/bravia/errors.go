package bravia

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ErrConfigurationMissing is returned before any network call when the TV
// address or pre-shared key has not been set up yet.
var ErrConfigurationMissing = errors.New("no Sony TV address or pre-shared key set up yet")

// InvalidAddressError reports a configured address that does not form a
// valid URL. It counts as missing configuration.
type InvalidAddressError struct {
	Address string
	Err     error
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid Sony TV address %q: %v", e.Address, e.Err)
}

func (e *InvalidAddressError) Unwrap() error {
	return e.Err
}

func (e *InvalidAddressError) Is(target error) bool {
	return target == ErrConfigurationMissing
}

// UnknownCommandError reports a command name that is not in the command table
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// DeviceRejectedError is returned when the TV answered with a non-200 status.
// ErrorCode and ErrorDescription are filled from a UPnP error body when the
// TV sent one (800 for a code it cannot accept, 401 for a malformed action).
type DeviceRejectedError struct {
	Status           int
	Body             string
	ErrorCode        int
	ErrorDescription string
}

func (e *DeviceRejectedError) Error() string {
	if e.ErrorCode != 0 {
		return fmt.Sprintf("TV rejected request with status %d: error %d %s", e.Status, e.ErrorCode, e.ErrorDescription)
	}
	return fmt.Sprintf("TV rejected request with status %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// NetworkError wraps a transport failure: refused connection, DNS failure or timeout
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("TV unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Result classifies the outcome of a single transmission
type Result string

const (
	ResultSuccess              Result = "success"
	ResultConfigurationMissing Result = "configuration_missing"
	ResultUnknownCommand       Result = "unknown_command"
	ResultDeviceRejected       Result = "device_rejected"
	ResultNetworkFailure       Result = "network_failure"
	ResultOther                Result = "other"
)

// Classify folds an error returned by Transmit into a Result
func Classify(err error) Result {
	var (
		unknown  *UnknownCommandError
		rejected *DeviceRejectedError
		network  *NetworkError
	)

	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, ErrConfigurationMissing):
		return ResultConfigurationMissing
	case errors.As(err, &unknown):
		return ResultUnknownCommand
	case errors.As(err, &rejected):
		return ResultDeviceRejected
	case errors.As(err, &network):
		return ResultNetworkFailure
	default:
		return ResultOther
	}
}

// upnpError matches the fault detail the TV embeds in a SOAP fault body
type upnpError struct {
	Code        int    `xml:"errorCode"`
	Description string `xml:"errorDescription"`
}

// parseUPnPError pulls errorCode and errorDescription out of a SOAP fault.
// It returns false when the body carries no UPnP error.
func parseUPnPError(body []byte) (upnpError, bool) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	for {
		token, err := decoder.Token()
		if err != nil {
			return upnpError{}, false
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "UPnPError" {
			continue
		}
		var fault upnpError
		if err := decoder.DecodeElement(&fault, &start); err != nil {
			return upnpError{}, false
		}
		return fault, fault.Code != 0
	}
}
