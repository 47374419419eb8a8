// Package http serves the admin surface: gate inspection and mutation,
// Prometheus metrics and a live feed of instrumentation records.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/gate"
)

// GateState is the JSON view of a gate.
type GateState struct {
	Threshold  domain.Severity `json:"threshold"`
	Enabled    bool            `json:"enabled"`
	CallerTags bool            `json:"caller_tags"`
	DevMode    bool            `json:"dev_mode"`
	Active     bool            `json:"active"`
}

// ThresholdRequest is the body of PUT /gate/threshold.
type ThresholdRequest struct {
	Threshold string `json:"threshold"`
}

// ToggleRequest is the body of PUT /gate/enabled and PUT /gate/caller-tags.
type ToggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// Server holds the admin handlers.
type Server struct {
	Gate     *gate.Gate
	Gatherer prometheus.Gatherer
	Streams  *StreamManager
}

// NewHandler creates the admin router. A nil gatherer disables /metrics and a
// nil stream manager disables /events.
func NewHandler(g *gate.Gate, gatherer prometheus.Gatherer, streams *StreamManager) http.Handler {
	server := &Server{Gate: g, Gatherer: gatherer, Streams: streams}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Route("/gate", func(r chi.Router) {
		r.Get("/", server.GetGate)
		r.Put("/threshold", server.PutThreshold)
		r.Put("/enabled", server.PutEnabled)
		r.Put("/caller-tags", server.PutCallerTags)
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	if streams != nil {
		r.Get("/events", server.SubscribeEvents)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetGate handles the GET /gate request.
func (s *Server) GetGate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

// PutThreshold handles the PUT /gate/threshold request.
func (s *Server) PutThreshold(w http.ResponseWriter, r *http.Request) {
	var body ThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("PutThreshold: Invalid request body", "error", err)
		return
	}

	sev, err := domain.ParseSeverity(body.Threshold)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid threshold: %v", err), http.StatusBadRequest)
		return
	}

	s.Gate.SetThreshold(sev)
	slog.Info("Gate threshold changed", "threshold", sev)
	writeJSON(w, http.StatusOK, s.state())
}

// PutEnabled handles the PUT /gate/enabled request.
func (s *Server) PutEnabled(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, "enabled", s.Gate.SetEnabled)
}

// PutCallerTags handles the PUT /gate/caller-tags request.
func (s *Server) PutCallerTags(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, "caller_tags", s.Gate.SetCallerTagsEnabled)
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request, name string, set func(bool)) {
	var body ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Gate toggle: Invalid request body", "switch", name, "error", err)
		return
	}

	set(*body.Enabled)
	slog.Info("Gate switch changed", "switch", name, "enabled", *body.Enabled)
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) state() GateState {
	return GateState{
		Threshold:  s.Gate.Threshold(),
		Enabled:    s.Gate.Enabled(),
		CallerTags: s.Gate.CallerTagsEnabled(),
		DevMode:    s.Gate.DevMode(),
		Active:     s.Gate.Active(),
	}
}

// SubscribeEvents handles the GET /events request (SSE).
// Query parameters: topic (records, actions, states; default records) and
// kind, a comma separated filter on record kinds.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		slog.Error("SubscribeEvents: Streaming not supported")
		return
	}

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = TopicRecords
	}
	if !validTopic(topic) {
		http.Error(w, fmt.Sprintf("Unknown topic %q", topic), http.StatusBadRequest)
		return
	}

	var kinds map[domain.LifecycleKind]bool
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kinds = make(map[domain.LifecycleKind]bool)
		for _, k := range strings.Split(raw, ",") {
			kinds[domain.LifecycleKind(strings.TrimSpace(k))] = true
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	slog.Info("SSE: Client subscribed", "topic", topic)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("SSE: Client disconnected", "topic", topic)
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if kinds != nil && !kinds[ev.Kind] {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", topic, ev.Data)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
