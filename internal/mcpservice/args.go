package mcpservice

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tolga/terp/internal/jsonrpc"
	"github.com/tolga/terp/internal/model"
)

const dateLayout = "2006-01-02"

// round2 rounds to two decimal places, matching the precision every
// original tool response uses for hour and currency figures.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func boolArg(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func requiredDateArg(args map[string]any, key string, loc *time.Location) (time.Time, error) {
	s := stringArg(args, key)
	if s == "" {
		return time.Time{}, jsonrpc.NewError(jsonrpc.KindInvalidArgument, fmt.Sprintf("missing required argument %q", key))
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, jsonrpc.NewError(jsonrpc.KindInvalidArgument, fmt.Sprintf("%s must be YYYY-MM-DD: %v", key, err))
	}
	return t, nil
}

func requiredUUIDArg(args map[string]any, key string) (uuid.UUID, error) {
	s := stringArg(args, key)
	if s == "" {
		return uuid.UUID{}, jsonrpc.NewError(jsonrpc.KindInvalidArgument, fmt.Sprintf("missing required argument %q", key))
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, jsonrpc.NewError(jsonrpc.KindInvalidArgument, fmt.Sprintf("%s must be a uuid: %v", key, err))
	}
	return id, nil
}

func optionalUUIDArg(args map[string]any, key string) (*uuid.UUID, error) {
	s := stringArg(args, key)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.KindInvalidArgument, fmt.Sprintf("%s must be a uuid: %v", key, err))
	}
	return &id, nil
}

// optionalEventKindArg validates the "tipo" filter against the schema's
// own ENTRADA/SALIDA enum check, so a caller bypassing JSON-schema
// validation (a direct Go call, not a JSON-RPC tools/call) still can't
// reach the repository with a bogus event kind.
func optionalEventKindArg(args map[string]any, key string) (string, error) {
	s := stringArg(args, key)
	if s == "" {
		return "", nil
	}
	if !model.EventKind(s).Valid() {
		return "", jsonrpc.NewError(jsonrpc.KindInvalidArgument, fmt.Sprintf("%s must be ENTRADA or SALIDA", key))
	}
	return s, nil
}

func requiredIntArg(args map[string]any, key string) (int, error) {
	v, ok := intArg(args, key)
	if !ok {
		return 0, jsonrpc.NewError(jsonrpc.KindInvalidArgument, fmt.Sprintf("missing required argument %q", key))
	}
	return v, nil
}
