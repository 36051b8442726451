// Package cli implements catalogctl, the maintenance CLI for the game library.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/game-library-service/internal/config"
	"github.com/preston-bernstein/game-library-service/internal/logging"
	"github.com/preston-bernstein/game-library-service/internal/server"
	"github.com/preston-bernstein/game-library-service/internal/store"
)

// Env carries the configuration and collaborators shared by every command.
type Env struct {
	Config config.Config
	Logger *slog.Logger
	Now    func() time.Time
}

// New returns the `catalogctl` root command.
func New(env Env) *cobra.Command {
	if env.Now == nil {
		env.Now = time.Now
	}
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Maintain the game library catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExportCmd(env))
	root.AddCommand(newAdminCmd(env))
	root.AddCommand(newSeedCmd(env))
	return root
}

// withStore opens the configured store for the duration of fn.
func withStore(ctx context.Context, env Env, fn func(store.Backend) error) error {
	backend, err := server.OpenStore(ctx, env.Config.Database, env.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logging.Warn(env.Logger, "store close failed", logging.FieldError, err)
		}
	}()
	return fn(backend)
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
