package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spec-kit/token-demo/internal/cli"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, version); err != nil {
		cancel()
		log.Fatalf("tokendemo: %v", err)
	}
}
