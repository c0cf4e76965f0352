package mcptransport_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tolga/terp/internal/jsonrpc"
	"github.com/tolga/terp/internal/mcptransport"
)

type stubRegistry struct{}

func (stubRegistry) List() []jsonrpc.ToolDescriptor { return nil }

func (stubRegistry) Call(ctx context.Context, name string, arguments json.RawMessage) (any, error) {
	return map[string]any{"ok": true}, nil
}

func newDispatcher() *jsonrpc.Dispatcher {
	return jsonrpc.NewDispatcher(stubRegistry{}, jsonrpc.ServerInfo{Name: "test", Version: "0.0.0"})
}

func TestMCP_GetReturnsInitializeShape(t *testing.T) {
	transport := mcptransport.NewMCP(newDispatcher(), "test-service", "1.2.3", nil)

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	rec := httptest.NewRecorder()
	transport.ServeMCP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp jsonrpc.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
}

func TestMCP_PostDispatchesSingleRequest(t *testing.T) {
	transport := mcptransport.NewMCP(newDispatcher(), "test-service", "1.2.3", nil)

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	transport.ServeMCP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestMCP_Health(t *testing.T) {
	transport := mcptransport.NewMCP(newDispatcher(), "test-service", "1.2.3", nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	transport.ServeHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "healthy", payload["status"])
	require.Equal(t, "test-service", payload["service"])
}

func TestMCP_Health_DegradedWhenCheckFails(t *testing.T) {
	failing := func(ctx context.Context) error { return context.DeadlineExceeded }
	transport := mcptransport.NewMCP(newDispatcher(), "test-service", "1.2.3", failing)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	transport.ServeHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "degraded", payload["status"])
}

// TestSSE_EndToEnd opens a real SSE connection against an httptest
// server, posts one JSON-RPC request to the paired /messages/ endpoint,
// and reads the dispatched response back off the stream.
func TestSSE_EndToEnd(t *testing.T) {
	sse := mcptransport.NewSSE(newDispatcher())

	mux := http.NewServeMux()
	mux.HandleFunc("/sse", sse.ServeSSE)
	mux.HandleFunc("/messages/", sse.ServeMessages)
	server := httptest.NewServer(mux)
	defer server.Close()

	sseResp, err := http.Get(server.URL + "/sse")
	require.NoError(t, err)
	defer sseResp.Body.Close()
	require.Equal(t, "text/event-stream", sseResp.Header.Get("Content-Type"))

	reader := bufio.NewReader(sseResp.Body)
	eventLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Contains(t, eventLine, "event: endpoint")

	dataLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Contains(t, dataLine, "/messages/?session_id=")

	endpoint := strings.TrimSpace(strings.TrimPrefix(dataLine, "data: "))
	parsed, err := url.Parse(endpoint)
	require.NoError(t, err)
	sessionID := parsed.Query().Get("session_id")
	require.NotEmpty(t, sessionID)

	reqBody := `{"jsonrpc":"2.0","id":7,"method":"tools/list"}`
	postResp, err := http.Post(server.URL+"/messages/?session_id="+sessionID, "application/json", strings.NewReader(reqBody))
	require.NoError(t, err)
	defer postResp.Body.Close()
	require.Equal(t, http.StatusAccepted, postResp.StatusCode)

	// The blank line that ends the endpoint event comes first, then the
	// dispatched response as a data: line.
	_, err = reader.ReadString('\n')
	require.NoError(t, err)
	respLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Contains(t, respLine, "data: ")
	require.Contains(t, respLine, `"id":7`)
}

func TestSSE_UnknownSessionReturns404(t *testing.T) {
	sse := mcptransport.NewSSE(newDispatcher())

	req := httptest.NewRequest(http.MethodPost, "/messages/?session_id="+"00000000-0000-0000-0000-000000000000", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	sse.ServeMessages(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeStdio_OneRequestPerLine(t *testing.T) {
	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n")
	var out strings.Builder

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := mcptransport.ServeStdio(ctx, newDispatcher(), in, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), `"jsonrpc":"2.0"`)
}
