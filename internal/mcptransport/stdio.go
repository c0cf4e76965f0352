package mcptransport

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/tolga/terp/internal/jsonrpc"
)

// ServeStdio speaks newline-delimited JSON-RPC over r/w: one request
// per line, one response per line, until r is exhausted or ctx is
// cancelled. This is the C9 stdio transport used when PORT is unset.
func ServeStdio(ctx context.Context, dispatcher *jsonrpc.Dispatcher, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := dispatcher.Handle(ctx, line)
		if _, err := fmt.Fprintf(w, "%s\n", resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}
