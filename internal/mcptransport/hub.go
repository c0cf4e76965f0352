// Package mcptransport implements the SSE (C7) and single-shot HTTP
// (C8) transports over the jsonrpc dispatch core, plus the stdio
// transport used in non-HTTP mode (C9).
package mcptransport

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// inboundCapacity bounds the per-session inbound queue (spec.md §4.7):
// POST /messages/ returns 429 once a session's queue is full.
const inboundCapacity = 32

// session is one SSE connection's state: an inbound queue fed by
// POST /messages/, and a cancel func fired when the GET connection
// closes so any in-flight handler observes cancellation at its next
// suspension point.
type session struct {
	id      uuid.UUID
	inbound chan []byte
	cancel  context.CancelFunc
}

// hub tracks live SSE sessions, guarded by a lock per spec.md §5's
// "session map: guarded by a lock; contention bounded by number of SSE
// clients".
type hub struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func newHub() *hub {
	return &hub{sessions: make(map[uuid.UUID]*session)}
}

func (h *hub) open(ctx context.Context) (*session, context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s := &session{
		id:      uuid.New(),
		inbound: make(chan []byte, inboundCapacity),
		cancel:  cancel,
	}
	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
	return s, ctx
}

// close tears the session down: removes it from the map and cancels
// its context, dropping any pending inbound messages and signalling
// cancellation to an in-flight handler.
func (h *hub) close(s *session) {
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()
	s.cancel()
}

func (h *hub) get(id uuid.UUID) (*session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	return s, ok
}

// push enqueues a raw JSON-RPC request onto the session's inbound
// queue. It reports false when the queue is full, which the caller
// turns into HTTP 429.
func (s *session) push(raw []byte) bool {
	select {
	case s.inbound <- raw:
		return true
	default:
		return false
	}
}
