// Command server runs the corpus catalog HTTP API.
//
// Configuration comes from CONFIG_PATH (YAML) overridden by environment
// variables; see internal/config. The server shuts down gracefully on
// SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/bhashasetu/corpus-catalog/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
