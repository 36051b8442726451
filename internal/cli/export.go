package cli

import (
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/game-library-service/internal/app/games"
	"github.com/preston-bernstein/game-library-service/internal/server"
	"github.com/preston-bernstein/game-library-service/internal/snapshots"
	"github.com/preston-bernstein/game-library-service/internal/store"
)

const defaultExportDir = "dist"

func newExportCmd(env Env) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as static JSON documents with its images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, env, func(backend store.Backend) error {
				images, err := server.OpenImages(ctx, env.Config.Uploads, nil)
				if err != nil {
					return err
				}
				defer images.Close()

				svc := games.NewService(backend, games.WithLogger(env.Logger))
				w := snapshots.NewWriter(out, env.Now)
				m, err := snapshots.Export(ctx, w, svc, images.Bucket(), env.Logger)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "exported %d games (%d featured, %d images, %d missing) to %s\n",
					m.Games.Count, m.Games.Featured, len(m.Images), len(m.MissingImages), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", defaultExportDir, "output directory")
	return cmd
}
