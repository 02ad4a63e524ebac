// Package http exposes the configuration engine over a REST API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
)

// Engine defines the interface for the configuration engine core.
type Engine interface {
	Configure(ctx context.Context, domainName, flowID, stepID string, input any) (domain.Result, error)
	Domains() []string
	Entries(domainName string) []domain.ConfigEntry
	AllEntries() []domain.ConfigEntry
}

// Server serves the configuration API.
type Server struct {
	Engine Engine
}

// ConfigureRequest is the body of POST /flows.
type ConfigureRequest struct {
	Domain string         `json:"domain"`
	FlowID string         `json:"flow_id,omitempty"`
	StepID string         `json:"step_id,omitempty"`
	Input  map[string]any `json:"input,omitempty"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine) http.Handler {
	server := &Server{Engine: engine}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/domains", server.GetDomains)
	r.Get("/domains/{domain}/entries", server.GetDomainEntries)
	r.Get("/entries", server.GetEntries)
	r.Get("/graph", server.GetGraph)
	r.Post("/flows", server.PostFlows)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":         "espalier-http",
		"version":     espalier.Version,
		"api_version": "0.1.0",
	})
}

// GetDomains handles the GET /domains request.
func (s *Server) GetDomains(w http.ResponseWriter, r *http.Request) {
	domains := s.Engine.Domains()
	if domains == nil {
		domains = []string{}
	}
	writeJSON(w, domains)
}

// GetDomainEntries handles the GET /domains/{domain}/entries request.
func (s *Server) GetDomainEntries(w http.ResponseWriter, r *http.Request) {
	entries := s.Engine.Entries(chi.URLParam(r, "domain"))
	if entries == nil {
		entries = []domain.ConfigEntry{}
	}
	writeJSON(w, entries)
}

// GetEntries handles the GET /entries request.
func (s *Server) GetEntries(w http.ResponseWriter, r *http.Request) {
	entries := s.Engine.AllEntries()
	if entries == nil {
		entries = []domain.ConfigEntry{}
	}
	writeJSON(w, entries)
}

// GetGraph handles the GET /graph request, rendering the committed entries
// as a Mermaid diagram.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(s.Engine.AllEntries()))
}

// PostFlows handles the POST /flows request: it starts or continues a
// configuration flow and returns the resulting envelope.
func (s *Server) PostFlows(w http.ResponseWriter, r *http.Request) {
	var body ConfigureRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Domain == "" {
		http.Error(w, "Field 'domain' is required", http.StatusBadRequest)
		return
	}

	var input any
	if body.Input != nil {
		input = body.Input
	}

	result, err := s.Engine.Configure(r.Context(), body.Domain, body.FlowID, body.StepID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownHandler):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrUnknownStep):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, fmt.Sprintf("Configure error: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}
