package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/security"
)

func newSecretCommand() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Print a random value for SECRET_KEY",
		Args:  cobra.NoArgs,
		// Needs no configuration or database.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := security.GenerateSecretKey(length)
			if err != nil {
				return fmt.Errorf("generate secret: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", security.DefaultSecretKeyLength, "secret length in characters")
	return cmd
}
