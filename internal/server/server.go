// Package server serves the projection form and its JSON API over HTTP.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iwvelando/streaming-roi/internal/config"
	"github.com/iwvelando/streaming-roi/internal/projection"
	"github.com/iwvelando/streaming-roi/pkg/constants"
	"github.com/iwvelando/streaming-roi/pkg/output"
	"github.com/iwvelando/streaming-roi/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	engine      *projection.Engine
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and projection API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		engine:      projection.NewEngine(logger),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(h.recoverMiddleware)
	r.Use(h.loggingMiddleware)

	r.Get("/healthz", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/defaults", h.handleDefaults)
		r.Get("/projection", h.handleProjectionQuery)
		r.Post("/projection", h.handleProjection)
	})

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

// Serve runs the HTTP server on addr until ctx is cancelled, then shuts it
// down, giving in-flight requests up to shutdownTimeout to finish.
func Serve(ctx context.Context, logger *zap.Logger, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "server.Serve"),
			zap.String("address", addr),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server",
		zap.String("op", "server.Serve"),
		zap.Duration("timeout", shutdownTimeout),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

type projectionResponse struct {
	output.Report
	CSV      string `json:"csv"`
	Duration string `json:"duration"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, projection.DefaultAssumptions())
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var (
		inputs projection.AssumptionSet
		err    error
	)
	if isYAML(r.Header.Get("Content-Type")) {
		inputs, err = assumptionsFromYAML(r.Body)
	} else {
		inputs, err = assumptionsFromJSON(r.Body)
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), "server.handleProjection")
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode assumptions: %v", err), "server.handleProjection")
		return
	}

	h.runProjection(w, r, inputs, start, "server.handleProjection")
}

func isYAML(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}

// assumptionsFromJSON overlays a JSON assumption set on the defaults. An
// empty body yields the defaults.
func assumptionsFromJSON(body io.Reader) (projection.AssumptionSet, error) {
	inputs := projection.DefaultAssumptions()
	if err := json.NewDecoder(body).Decode(&inputs); err != nil && !errors.Is(err, io.EOF) {
		return inputs, err
	}
	return inputs, nil
}

// assumptionsFromYAML accepts a full configuration document, as written for
// the CLI, and keeps only its assumptions.
func assumptionsFromYAML(body io.Reader) (projection.AssumptionSet, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return projection.AssumptionSet{}, err
	}
	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(data))
	if err != nil {
		return projection.AssumptionSet{}, err
	}
	return conf.Assumptions, nil
}

func (h *handler) handleProjectionQuery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	inputs, err := assumptionsFromQuery(r.URL.Query())
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), "server.handleProjectionQuery")
		return
	}
	h.runProjection(w, r, inputs, start, "server.handleProjectionQuery")
}

func (h *handler) runProjection(w http.ResponseWriter, r *http.Request, inputs projection.AssumptionSet, start time.Time, op string) {
	result := h.engine.Compute(inputs)
	warnings := validation.ValidateAssumptions(inputs)

	response := projectionResponse{
		Report:   output.NewReport(inputs, result, warnings),
		CSV:      output.CsvString(result),
		Duration: time.Since(start).String(),
	}

	h.logger.Info("projection computed",
		zap.String("op", op),
		zap.String("request_id", requestIDFromContext(r.Context())),
		zap.Int("periods", len(result)),
		zap.Int("warnings", len(warnings)),
		zap.String("finalRoiStatus", result[len(result)-1].ROIStatus.String()),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// assumptionsFromQuery overlays query parameters on the default assumptions.
func assumptionsFromQuery(values map[string][]string) (projection.AssumptionSet, error) {
	inputs := projection.DefaultAssumptions()

	get := func(name string) (string, bool) {
		v, ok := values[name]
		if !ok || len(v) == 0 || strings.TrimSpace(v[0]) == "" {
			return "", false
		}
		return strings.TrimSpace(v[0]), true
	}

	if raw, ok := get("weeklyAttendance"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return inputs, fmt.Errorf("invalid weeklyAttendance %q: expected an integer", raw)
		}
		inputs = inputs.WithWeeklyAttendance(n)
	}

	floats := []struct {
		name  string
		apply func(projection.AssumptionSet, float64) projection.AssumptionSet
	}{
		{"averageGiving", projection.AssumptionSet.WithAverageGiving},
		{"streamingCost", projection.AssumptionSet.WithStreamingCost},
		{"equipmentCost", projection.AssumptionSet.WithEquipmentCost},
		{"staffHours", projection.AssumptionSet.WithStaffHours},
		{"onlineEngagement", projection.AssumptionSet.WithOnlineEngagement},
	}
	for _, field := range floats {
		raw, ok := get(field.name)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return inputs, fmt.Errorf("invalid %s %q: expected a number", field.name, raw)
		}
		inputs = field.apply(inputs, v)
	}

	return inputs, nil
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("projection request failed",
		zap.String("op", op),
		zap.String("request_id", requestIDFromContext(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes before writing the header so an encoding failure still
// produces a well-formed error response.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		status = http.StatusUnprocessableEntity
		body, _ = json.Marshal(map[string]string{"error": fmt.Sprintf("result cannot be encoded: %v", err)})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
