// Command server runs the formsink HTTP service.
//
// Configuration comes from environment variables and an optional YAML file;
// see internal/config.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/formsink/formsink/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("formsink: %v", err)
	}
}
