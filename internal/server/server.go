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

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"sonyremote/internal/bravia"
	"sonyremote/internal/logger"
	"sonyremote/internal/sequencer"
	"sonyremote/internal/settings"
	"sonyremote/internal/status"
)

// Runner executes batches
type Runner interface {
	Prepare(tokens []string) *sequencer.Report
	Execute(ctx context.Context, report *sequencer.Report) error
}

// SettingsStore reads and replaces the device endpoint
type SettingsStore interface {
	settings.Provider
	SaveEndpoint(ctx context.Context, endpoint bravia.Endpoint) error
}

// InfoClient queries the TV for its remote controller description
type InfoClient interface {
	RemoteControllerInfo(ctx context.Context, address string) ([]byte, error)
}

// Options wires the API server to the rest of the remote
type Options struct {
	Sequencer Runner
	Settings  SettingsStore
	Info      InfoClient
	Board     *status.Board
	History   *status.History
	// Gatherer backs /metrics; nil uses the default registry
	Gatherer prometheus.Gatherer
	// JWT enables bearer authentication when set
	JWT *JWTService
}

// APIServer handles REST API requests
type APIServer struct {
	sequencer Runner
	settings  SettingsStore
	info      InfoClient
	board     *status.Board
	history   *status.History
	gatherer  prometheus.Gatherer
	jwt       *JWTService
	logger    zerolog.Logger
	server    *http.Server

	// async batches outlive their request but not the server
	ctx    context.Context
	cancel context.CancelFunc
}

// NewAPIServer creates a new API server
func NewAPIServer(options Options) *APIServer {
	ctx, cancel := context.WithCancel(context.Background())

	api := &APIServer{
		sequencer: options.Sequencer,
		settings:  options.Settings,
		info:      options.Info,
		board:     options.Board,
		history:   options.History,
		gatherer:  options.Gatherer,
		jwt:       options.JWT,
		logger:    logger.With("api"),
		ctx:       ctx,
		cancel:    cancel,
	}
	if api.gatherer == nil {
		api.gatherer = prometheus.DefaultGatherer
	}
	if api.board == nil {
		api.board = status.NewBoard()
	}
	if api.history == nil {
		api.history = status.NewHistory(status.DefaultHistorySize)
	}
	return api
}

// Router builds the route table
func (api *APIServer) Router() http.Handler {
	router := mux.NewRouter()

	router.Use(api.loggingMiddleware)
	router.Use(api.corsMiddleware)

	// Preflight requests carry no credentials and match no method-bound route,
	// so they are answered by corsMiddleware before auth runs
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Handle("/metrics", promhttp.HandlerFor(api.gatherer, promhttp.HandlerOpts{})).Methods("GET")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(api.requireAuth("health"))

	apiRouter.HandleFunc("/health", api.handleHealth).Methods("GET").Name("health")
	apiRouter.HandleFunc("/commands", api.handleCommands).Methods("GET")

	apiRouter.HandleFunc("/batch", api.handleBatch).Methods("POST")
	apiRouter.HandleFunc("/batches", api.handleListBatches).Methods("GET")
	apiRouter.HandleFunc("/batches/{id}", api.handleGetBatch).Methods("GET")
	apiRouter.HandleFunc("/status", api.handleStatus).Methods("GET")

	apiRouter.HandleFunc("/settings", api.handleGetSettings).Methods("GET")
	apiRouter.HandleFunc("/settings", api.handlePutSettings).Methods("PUT")

	apiRouter.HandleFunc("/info", api.handleInfo).Methods("GET")

	return router
}

// Start starts the HTTP API server and blocks until it stops
func (api *APIServer) Start(address string) error {
	api.server = &http.Server{
		Addr:         address,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	api.logger.Info().
		Str("address", address).
		Bool("auth", api.jwt != nil).
		Msg("Starting API server")

	err := api.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop cancels running async batches and shuts the server down
func (api *APIServer) Stop(ctx context.Context) error {
	api.cancel()
	if api.server != nil {
		return api.server.Shutdown(ctx)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware
func (api *APIServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		api.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("API request")
	})
}

func (api *APIServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Response helpers
func (api *APIServer) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (api *APIServer) sendError(w http.ResponseWriter, status int, message string) {
	api.sendJSON(w, status, map[string]interface{}{
		"error":     true,
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
