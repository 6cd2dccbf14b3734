package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

func newTokenCommand(env *commandEnv) *cobra.Command {
	var (
		userName string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token that acts as a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := env.openJournal()
			if err != nil {
				return err
			}
			defer j.close()

			user, err := j.findUser(userName, env.cfg.DefaultUser)
			if err != nil {
				return err
			}
			tokens := services.NewTokenService(env.cfg.Auth.SecretKey, ttl)
			return runToken(tokens, user.ID, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&userName, "user", "", "user name (default DEFAULT_USER)")
	cmd.Flags().DurationVar(&ttl, "ttl", services.DefaultTokenTTL, "token lifetime")
	return cmd
}

func runToken(tokens *services.TokenService, userID uint, out io.Writer) error {
	token, err := tokens.Issue(userID)
	if errors.Is(err, services.ErrTokenSecretMissing) {
		return errors.New("SECRET_KEY must be set to issue tokens")
	}
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(out, token)
	return nil
}
