package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preston-bernstein/game-library-service/internal/cli"
	"github.com/preston-bernstein/game-library-service/internal/config"
	"github.com/preston-bernstein/game-library-service/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		File:    cfg.Log.File,
		Service: "catalogctl",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.New(cli.Env{Config: cfg, Logger: logger, Now: time.Now})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "catalogctl:", err)
		stop()
		os.Exit(1)
	}
}
