package cli

import (
	"github.com/spf13/cobra"

	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
	"github.com/preston-bernstein/game-library-service/internal/store"
)

func newSeedCmd(env Env) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample games into an empty catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, env, func(backend store.Backend) error {
				existing, err := backend.ListGames(ctx)
				if err != nil {
					return err
				}
				if len(existing) > 0 && !force {
					printf(cmd.OutOrStdout(), "catalog already has %d games, skipping seed\n", len(existing))
					return nil
				}
				samples := domaingames.SampleCatalog()
				for _, g := range samples {
					if _, err := backend.CreateGame(ctx, g); err != nil {
						return err
					}
				}
				printf(cmd.OutOrStdout(), "seeded %d games\n", len(samples))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even when the catalog is not empty")
	return cmd
}
