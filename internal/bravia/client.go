package bravia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"sonyremote/internal/logger"
)

// DefaultTimeout bounds one exchange with the TV
const DefaultTimeout = 3 * time.Second

// maxBodySize caps how much of an error response is kept
const maxBodySize = 64 << 10

// irccEnvelope is sent as-is with the code substituted. It must not be
// escaped: an escaped body makes the TV answer 401 Invalid Action.
const irccEnvelope = `<?xml version="1.0"?>
<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">
  <s:Body>
    <u:X_SendIRCC xmlns:u="urn:schemas-sony-com:service:IRCC:1">
      <IRCCCode>%s</IRCCCode>
    </u:X_SendIRCC>
  </s:Body>
</s:Envelope>`

// BraviaClient sends IRCC commands and info queries to a Sony Bravia TV.
// It holds no device address; every call is given the endpoint to use.
type BraviaClient struct {
	httpClient *http.Client
	debug      bool
	logger     zerolog.Logger
}

// Option configures a BraviaClient
type Option func(*BraviaClient)

// WithTimeout overrides DefaultTimeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *BraviaClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. The client is copied,
// so later options never modify the caller's value.
func WithHTTPClient(client *http.Client) Option {
	return func(c *BraviaClient) {
		copied := *client
		c.httpClient = &copied
	}
}

// WithTransport swaps the round tripper while keeping the configured timeout
func WithTransport(transport http.RoundTripper) Option {
	return func(c *BraviaClient) {
		c.httpClient.Transport = transport
	}
}

// WithDebug enables request/response debug logging
func WithDebug(debug bool) Option {
	return func(c *BraviaClient) {
		c.debug = debug
	}
}

// NewBraviaClient creates a new Bravia client instance
func NewBraviaClient(options ...Option) *BraviaClient {
	client := &BraviaClient{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.With("bravia"),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Transmit sends one symbolic command to the TV at endpoint. A nil error
// means the TV answered 200. No request is made when the endpoint is not
// configured or the command is unknown. Transmit never retries.
func (c *BraviaClient) Transmit(ctx context.Context, command string, endpoint Endpoint) error {
	if !endpoint.Configured() {
		return ErrConfigurationMissing
	}

	code, ok := Lookup(command)
	if !ok {
		return &UnknownCommandError{Name: command}
	}

	return c.RemoteRequest(ctx, endpoint, code)
}

// RemoteRequest sends an IRCC SOAP request carrying code
func (c *BraviaClient) RemoteRequest(ctx context.Context, endpoint Endpoint, code BraviaRemoteCode) error {
	url := fmt.Sprintf("http://%s%s", endpoint.Address, IRCCEndpoint)
	body := fmt.Sprintf(irccEnvelope, string(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(body))
	if err != nil {
		return &InvalidAddressError{Address: endpoint.Address, Err: err}
	}

	// Assigned directly so the header names go out in the casing the TV documents
	req.Header.Set("Content-Type", irccContentType)
	req.Header["SOAPAction"] = []string{irccSOAPAction}
	req.Header["X-Auth-PSK"] = []string{endpoint.PSK}

	if c.debug {
		c.logger.Debug().
			Str("url", url).
			Str("code", string(code)).
			Msg("Sending IRCC remote request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rejected := readRejection(resp)
		c.logger.Warn().
			Str("url", url).
			Int("status", rejected.Status).
			Str("body", rejected.Body).
			Msg("IRCC request failed")
		return rejected
	}

	// Drain so the connection can be reused for the next command
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if c.debug {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Msg("IRCC request successful")
	}

	return nil
}

// RemoteControllerInfo asks the TV for its remote controller info and returns
// the JSON body unparsed. The system service needs no pre-shared key.
func (c *BraviaClient) RemoteControllerInfo(ctx context.Context, address string) ([]byte, error) {
	if address == "" {
		return nil, ErrConfigurationMissing
	}

	payload := CreatePayload(remoteControllerInfoID, GetRemoteControllerInfo, nil)
	resp, err := c.ControlRequest(ctx, address, SystemEndpoint, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readRejection(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return body, nil
}

// ControlRequest sends a JSON API control request. The caller owns the response body.
func (c *BraviaClient) ControlRequest(ctx context.Context, address string, endpoint BraviaEndpoint, payload BraviaPayload) (*http.Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("http://%s%s", address, string(endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &InvalidAddressError{Address: address, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	if c.debug {
		c.logger.Debug().
			Str("url", url).
			Str("method", payload.Method).
			Str("payload", string(jsonData)).
			Msg("Sending control API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if c.debug {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("method", payload.Method).
			Msg("Control API request completed")
	}

	return resp, nil
}

// CreatePayload builds a control API payload with default values
func CreatePayload(id int, method BraviaMethod, params []map[string]string) BraviaPayload {
	if params == nil {
		params = []map[string]string{}
	}

	return BraviaPayload{
		ID:      id,
		Version: "1.0",
		Method:  string(method),
		Params:  params,
	}
}

func readRejection(resp *http.Response) *DeviceRejectedError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	rejected := &DeviceRejectedError{
		Status: resp.StatusCode,
		Body:   string(body),
	}
	if fault, ok := parseUPnPError(body); ok {
		rejected.ErrorCode = fault.Code
		rejected.ErrorDescription = fault.Description
	}
	return rejected
}
