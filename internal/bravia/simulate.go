package bravia

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// SimulatedTransport answers IRCC and system requests the way a TV would,
// without touching the network. It backs the CLI test mode.
type SimulatedTransport struct {
	mu       sync.Mutex
	requests []*http.Request
}

// simulatedInfo is a trimmed getRemoteControllerInfo answer
const simulatedInfo = `{"result":[{"bundled":true,"type":"IR_REMOTE_BUNDLE_TYPE_AEP_N"},[{"name":"PowerOff","value":"AAAAAQAAAAEAAAAvAw=="},{"name":"Mute","value":"AAAAAQAAAAEAAAAUAw=="}]],"id":10}`

// RoundTrip implements http.RoundTripper
func (t *SimulatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.mu.Unlock()

	switch {
	case strings.EqualFold(req.URL.Path, string(IRCCEndpoint)):
		return simulatedResponse(req, http.StatusOK, ""), nil
	case req.URL.Path == string(SystemEndpoint):
		return simulatedResponse(req, http.StatusOK, simulatedInfo), nil
	default:
		return simulatedResponse(req, http.StatusNotFound, fmt.Sprintf("no such service %s", req.URL.Path)), nil
	}
}

// Requests returns how many requests the transport has answered
func (t *SimulatedTransport) Requests() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

func simulatedResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Request:    req,
	}
}
