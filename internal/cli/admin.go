package cli

import (
	"bufio"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/game-library-service/internal/app/admins"
	"github.com/preston-bernstein/game-library-service/internal/store"
)

func newAdminCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{Use: "admin", Short: "Manage the admin credential"}
	cmd.AddCommand(newSetPasswordCmd(env))
	return cmd
}

func newSetPasswordCmd(env Env) *cobra.Command {
	var (
		password  string
		fromStdin bool
	)
	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Replace the admin password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("read password from stdin: no input")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("a password is required: use --password or --password-stdin")
			}
			ctx := cmd.Context()
			return withStore(ctx, env, func(backend store.Backend) error {
				svc := admins.NewService(backend, env.Config.Admin.DefaultPassword, env.Config.Admin.BcryptCost, env.Logger)
				a, err := svc.SetPassword(ctx, password)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "admin password updated at %s\n", a.UpdatedAt.Format(time.RFC3339))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new admin password")
	cmd.Flags().BoolVar(&fromStdin, "password-stdin", false, "read the password from the first line of stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	return cmd
}
