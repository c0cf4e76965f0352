package mcptransport

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tolga/terp/internal/jsonrpc"
)

// heartbeatInterval is how often ServeSSE writes a comment line to keep
// idle intermediaries from closing the connection.
const heartbeatInterval = 10 * time.Second

// SSE implements the C7 transport: GET /sse opens the event stream,
// POST /messages/?session_id=… feeds it inbound requests. Inbound
// messages for one session are processed in arrival order (spec.md §5),
// which this handler gets for free by dispatching them on the same
// goroutine that owns the SSE response writer.
type SSE struct {
	dispatcher *jsonrpc.Dispatcher
	hub        *hub
}

// NewSSE builds an SSE transport bound to the given dispatch core.
func NewSSE(dispatcher *jsonrpc.Dispatcher) *SSE {
	return &SSE{dispatcher: dispatcher, hub: newHub()}
}

// ServeSSE handles GET /sse.
func (t *SSE) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sess, ctx := t.hub.open(r.Context())
	defer t.hub.close(sess)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: endpoint\ndata: /messages/?session_id=%s\n\n", sess.id)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case raw := <-sess.inbound:
			resp := t.dispatcher.Handle(ctx, raw)
			fmt.Fprintf(w, "data: %s\n\n", resp)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

// ServeMessages handles POST /messages/?session_id=….
func (t *SSE) ServeMessages(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("session_id")
	sessionID, err := uuid.Parse(rawID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid or missing session_id")
		return
	}

	sess, ok := t.hub.get(sessionID)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown session")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if !sess.push(body) {
		log.Warn().Str("session_id", sessionID.String()).Msg("sse inbound queue full")
		respondError(w, http.StatusTooManyRequests, "session inbound queue is full")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
