// Command settle computes balances and settlements for a trip snapshot.
//
// Usage:
//
//	settle [snapshot.json]
//
// The snapshot is read from the file argument, or stdin if none is given, in
// the same JSON shape as a LedgerService/Settle request. The result is
// printed to stdout as a Settle response.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmynk/tripledger/internal/service"
	"github.com/mmynk/tripledger/pkg/api"
	"github.com/mmynk/tripledger/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("settle failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: settle [snapshot.json]")
	}

	in := stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req api.SettleRequest
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	summary, err := service.SettleSnapshot(ctx, &req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(api.SettleResponse{Summary: *summary})
}
