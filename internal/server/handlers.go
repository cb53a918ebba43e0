package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"sonyremote/internal/bravia"
	"sonyremote/internal/sequencer"
	"sonyremote/internal/settings"
	"sonyremote/internal/status"
)

// BatchRequest names the buttons to press. Tokens and Command may be combined;
// Command is split on whitespace and appended.
type BatchRequest struct {
	Tokens  []string `json:"tokens,omitempty"`
	Command string   `json:"command,omitempty"`
}

// BatchResponse describes a finished or accepted batch
type BatchResponse struct {
	ID       string   `json:"id"`
	Tokens   []string `json:"tokens"`
	Commands []string `json:"commands"`
	Sent     int      `json:"sent"`
	State    string   `json:"state"`
	Error    string   `json:"error,omitempty"`
	Result   string   `json:"result,omitempty"`
}

// SettingsRequest replaces the stored endpoint
type SettingsRequest struct {
	Address string `json:"address"`
	PSK     string `json:"psk"`
}

// SettingsResponse shows the stored endpoint with the key masked
type SettingsResponse struct {
	Address    string `json:"address"`
	PSK        string `json:"psk"`
	Configured bool   `json:"configured"`
}

func (api *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (api *APIServer) handleCommands(w http.ResponseWriter, r *http.Request) {
	commands := bravia.Commands()
	api.sendJSON(w, http.StatusOK, map[string]interface{}{
		"commands": commands,
		"count":    len(commands),
	})
}

func (api *APIServer) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens := append([]string{}, req.Tokens...)
	tokens = append(tokens, sequencer.ParseButton(req.Command)...)
	if len(tokens) == 0 {
		api.sendError(w, http.StatusBadRequest, "No buttons given")
		return
	}

	report := api.sequencer.Prepare(tokens)

	if async, _ := strconv.ParseBool(r.URL.Query().Get("async")); async {
		api.history.Track(report.ID, report.Tokens, report.Commands, time.Now())
		go func() {
			if err := api.sequencer.Execute(api.ctx, report); err != nil {
				api.logger.Debug().Err(err).Str("batch_id", report.ID).Msg("Async batch did not complete")
			}
		}()
		api.sendJSON(w, http.StatusAccepted, BatchResponse{
			ID:       report.ID,
			Tokens:   report.Tokens,
			Commands: report.Commands,
			State:    string(status.KindQueued),
		})
		return
	}

	err := api.sequencer.Execute(r.Context(), report)
	response := BatchResponse{
		ID:       report.ID,
		Tokens:   report.Tokens,
		Commands: report.Commands,
		Sent:     report.Sent,
		State:    string(status.KindSucceeded),
	}
	if err != nil {
		response.State = string(status.KindFailed)
		if statusFor(err) == http.StatusConflict {
			response.State = string(status.KindCanceled)
		}
		response.Error = err.Error()
		response.Result = string(bravia.Classify(err))
	}
	api.sendJSON(w, statusFor(err), response)
}

func (api *APIServer) handleListBatches(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, http.StatusOK, map[string]interface{}{
		"batches": api.history.Recent(),
	})
}

func (api *APIServer) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	record, ok := api.history.Get(id)
	if !ok {
		api.sendError(w, http.StatusNotFound, "Batch not found")
		return
	}
	api.sendJSON(w, http.StatusOK, record)
}

func (api *APIServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	message, ok := api.board.Current()
	response := map[string]interface{}{"active": ok}
	if ok {
		response["message"] = message
	}
	api.sendJSON(w, http.StatusOK, response)
}

func (api *APIServer) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	endpoint, err := api.settings.Endpoint(r.Context())
	if err != nil {
		api.logger.Error().Err(err).Msg("Failed to read settings")
		api.sendError(w, http.StatusInternalServerError, "Failed to read settings")
		return
	}

	response := SettingsResponse{
		Address:    endpoint.Address,
		Configured: endpoint.Configured(),
	}
	if endpoint.PSK != "" {
		response.PSK = settings.MaskPSK(endpoint.PSK)
	}
	api.sendJSON(w, http.StatusOK, response)
}

func (api *APIServer) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	endpoint := bravia.Endpoint{Address: req.Address, PSK: req.PSK}
	if err := api.settings.SaveEndpoint(r.Context(), endpoint); err != nil {
		if errors.Is(err, settings.ErrIncompleteEndpoint) {
			api.sendError(w, http.StatusBadRequest, err.Error())
			return
		}
		api.logger.Error().Err(err).Msg("Failed to save settings")
		api.sendError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	api.logger.Info().Str("address", endpoint.Address).Msg("Device settings updated")
	api.sendJSON(w, http.StatusOK, SettingsResponse{
		Address:    endpoint.Address,
		PSK:        settings.MaskPSK(endpoint.PSK),
		Configured: true,
	})
}

func (api *APIServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	endpoint, err := api.settings.Endpoint(r.Context())
	if err != nil {
		api.sendError(w, http.StatusInternalServerError, "Failed to read settings")
		return
	}
	if endpoint.Address == "" {
		api.sendError(w, statusFor(bravia.ErrConfigurationMissing), bravia.ErrConfigurationMissing.Error())
		return
	}

	body, err := api.info.RemoteControllerInfo(r.Context(), endpoint.Address)
	if err != nil {
		api.sendError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// statusFor maps a batch or transmission error onto an HTTP status
func statusFor(err error) int {
	switch bravia.Classify(err) {
	case bravia.ResultSuccess:
		return http.StatusOK
	case bravia.ResultUnknownCommand:
		return http.StatusBadRequest
	case bravia.ResultConfigurationMissing:
		return http.StatusPreconditionFailed
	case bravia.ResultDeviceRejected:
		return http.StatusBadGateway
	case bravia.ResultNetworkFailure:
		return http.StatusGatewayTimeout
	}

	switch {
	case errors.Is(err, sequencer.ErrBusy), errors.Is(err, sequencer.ErrPreempted),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
