package mcptransport

import (
	"context"
	"io"
	"net/http"

	"github.com/tolga/terp/internal/jsonrpc"
)

// HealthChecker pings the backing store. A nil HealthChecker means no
// live check is available (e.g. the process started with no DB
// connection at all), in which case ServeHealth reports process-level
// health only.
type HealthChecker func(ctx context.Context) error

// MCP implements the C8 transport: a single /mcp endpoint, GET for
// discovery and POST for a synchronous one-shot JSON-RPC round trip.
// It carries no session state, so concurrent POSTs are served in
// parallel.
type MCP struct {
	dispatcher  *jsonrpc.Dispatcher
	serviceName string
	version     string
	health      HealthChecker
}

// NewMCP builds an HTTP transport bound to the given dispatch core.
// health may be nil when there is no database to ping.
func NewMCP(dispatcher *jsonrpc.Dispatcher, serviceName, version string, health HealthChecker) *MCP {
	return &MCP{dispatcher: dispatcher, serviceName: serviceName, version: version, health: health}
}

// ServeMCP handles both GET (discovery) and POST (dispatch) on /mcp.
func (t *MCP) ServeMCP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		resp := t.dispatcher.Dispatch(r.Context(), jsonrpc.Request{JSONRPC: jsonrpc.Version, Method: "initialize"})
		respondJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		out := t.dispatcher.Handle(r.Context(), body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// ServeHealth handles GET / and GET /health, reporting "degraded" when
// the health check fails (typically a DB ping). With no checker
// configured it reports "healthy" without checking anything.
func (t *MCP) ServeHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if t.health != nil {
		if err := t.health(r.Context()); err != nil {
			status = "degraded"
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"service": t.serviceName,
		"version": t.version,
	})
}
