package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// ToolDescriptor is the public shape of one registered tool, as surfaced
// by tools/list.
type ToolDescriptor struct {
	Name        string
	Description string
	InputSchema any
}

// ToolRegistry is what the dispatch core needs from the C5 tool
// registry: enumerate tools for tools/list, and invoke one by name for
// tools/call. The registry validates arguments against its own schemas
// before invoking the handler; a validation failure comes back as an
// *Error with Kind == KindInvalidArgument.
type ToolRegistry interface {
	List() []ToolDescriptor
	Call(ctx context.Context, name string, arguments json.RawMessage) (any, error)
}

// ServerInfo is echoed back on initialize.
type ServerInfo struct {
	Name    string
	Version string
}

// Dispatcher is the pure (message -> message) routing core. It does no
// I/O: transports own the bytes and the connection.
type Dispatcher struct {
	registry ToolRegistry
	info     ServerInfo
}

// NewDispatcher builds a Dispatcher bound to a frozen tool registry.
func NewDispatcher(registry ToolRegistry, info ServerInfo) *Dispatcher {
	return &Dispatcher{registry: registry, info: info}
}

// Handle parses raw bytes as a Request, dispatches it, and marshals the
// Response back to bytes. Malformed JSON yields a PROTOCOL_PARSE error
// response rather than propagating the decode error.
func (d *Dispatcher) Handle(ctx context.Context, raw []byte) []byte {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		resp := errorResponse(nil, NewError(KindProtocolParse, fmt.Sprintf("invalid JSON: %v", err)))
		return mustMarshal(resp)
	}
	return mustMarshal(d.Dispatch(ctx, req))
}

// Dispatch routes one already-parsed Request to its method handler.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	switch {
	case req.Method == "initialize":
		return d.handleInitialize(req)
	case req.Method == "tools/list":
		return d.handleToolsList(req)
	case req.Method == "tools/call":
		return d.handleToolsCall(ctx, req)
	case strings.HasPrefix(req.Method, "notifications/"):
		// Acknowledged with an empty result even though JSON-RPC 2.0
		// treats notifications as fire-and-forget: upstream agents
		// expect a response.
		return resultResponse(req.ID, map[string]any{})
	default:
		return errorResponse(req.ID, NewError(KindUnknownMethod, fmt.Sprintf("Method not found: %s", req.Method)))
	}
}

func (d *Dispatcher) handleInitialize(req Request) Response {
	return resultResponse(req.ID, map[string]any{
		"protocolVersion": "2024-11-05",
		"serverInfo": map[string]string{
			"name":    d.info.Name,
			"version": d.info.Version,
		},
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
	})
}

func (d *Dispatcher) handleToolsList(req Request) Response {
	descriptors := d.registry.List()
	tools := make([]map[string]any, 0, len(descriptors))
	for _, t := range descriptors {
		tools = append(tools, map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"inputSchema": t.InputSchema,
		})
	}
	return resultResponse(req.ID, map[string]any{"tools": tools})
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (d *Dispatcher) handleToolsCall(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("method", req.Method).Msg("tool handler panicked")
			resp = errorResponse(req.ID, NewError(KindHandlerFailure, fmt.Sprintf("handler panic: %v", r)))
		}
	}()

	var params toolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, NewError(KindInvalidArgument, fmt.Sprintf("invalid params: %v", err)))
		}
	}
	if params.Name == "" {
		return errorResponse(req.ID, NewError(KindInvalidArgument, "tools/call requires a tool name"))
	}

	result, err := d.registry.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		if rpcErr, ok := err.(*Error); ok {
			return errorResponse(req.ID, rpcErr)
		}
		return errorResponse(req.ID, NewError(KindHandlerFailure, err.Error()))
	}

	text, err := json.Marshal(result)
	if err != nil {
		return errorResponse(req.ID, NewError(KindHandlerFailure, fmt.Sprintf("failed to encode result: %v", err)))
	}

	return resultResponse(req.ID, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": string(text)},
		},
	})
}

func mustMarshal(resp Response) []byte {
	out, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal jsonrpc response")
		out, _ = json.Marshal(errorResponse(resp.ID, NewError(KindHandlerFailure, "failed to encode response")))
	}
	return out
}
