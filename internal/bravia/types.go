// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bravia

// BraviaRemoteCode represents a remote control code for Sony Bravia TVs
type BraviaRemoteCode string

// BraviaEndpoint represents an API endpoint for Sony Bravia control
type BraviaEndpoint string

// BraviaMethod represents an API method for Sony Bravia control
type BraviaMethod string

// BraviaPayload represents the JSON payload structure for control API requests
type BraviaPayload struct {
	Method  string              `json:"method"`
	Params  []map[string]string `json:"params"`
	ID      int                 `json:"id"`
	Version string              `json:"version"`
}

// Endpoint is where a single TV listens and the pre-shared key it expects.
type Endpoint struct {
	Address string `json:"address" yaml:"address"`
	PSK     string `json:"psk" yaml:"psk"`
}

// Configured reports whether both the address and the key are set
func (e Endpoint) Configured() bool {
	return e.Address != "" && e.PSK != ""
}

// API endpoints used by the remote
const (
	IRCCEndpoint   BraviaEndpoint = "/sony/IRCC"
	SystemEndpoint BraviaEndpoint = "/sony/system"
)

// API methods used by the remote
const (
	GetRemoteControllerInfo BraviaMethod = "getRemoteControllerInfo"
)

// IRCC wire constants. The SOAPAction value must keep its surrounding quotes,
// the TV answers "Invalid Action" without them.
const (
	irccContentType = "text/xml; charset=UTF-8"
	irccSOAPAction  = `"urn:schemas-sony-com:service:IRCC:1#X_SendIRCC"`

	// remoteControllerInfoID is the request id the TV echoes back
	remoteControllerInfoID = 10
)
