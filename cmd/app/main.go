package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The configured logger only exists once wiring succeeds.
	bootLogger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("service", "smart-wardrobe")

	app, err := initializeApp()
	if err != nil {
		bootLogger.Error("failed to wire wardrobe console", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		stop()
		bootLogger.Error("wardrobe console stopped with error", "error", err)
		os.Exit(1)
	}
}
