package mcptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Mount wires the C7/C8 routes, plus the health endpoints, onto r. CORS
// allows any origin and any header, since the tool catalog carries no
// authentication. Only the six methods listed below are allowed; any
// other method (HEAD, for example) is not in the allowed list.
func Mount(r chi.Router, sse *SSE, mcp *MCP) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", mcp.ServeHealth)
	r.Get("/health", mcp.ServeHealth)
	r.Get("/mcp", mcp.ServeMCP)
	r.Post("/mcp", mcp.ServeMCP)
	r.Get("/sse", sse.ServeSSE)
	r.Post("/messages/", sse.ServeMessages)
}

// NewServer builds the http.Server the C9 lifecycle binds and shuts
// down. WriteTimeout is left at zero: /sse holds its response open
// indefinitely, and spec.md §5 promises no per-request timeout in the
// core.
func NewServer(addr string, r chi.Router) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
