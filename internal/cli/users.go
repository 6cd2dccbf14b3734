package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

func newUserCommand(env *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage journal users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := env.openJournal()
			if err != nil {
				return err
			}
			defer j.close()
			return runUserAdd(j, args[0], cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := env.openJournal()
			if err != nil {
				return err
			}
			defer j.close()
			return runUserList(j, cmd.OutOrStdout())
		},
	})
	return cmd
}

func runUserAdd(j *journal, name string, out io.Writer) error {
	user, err := j.users.CreateUser(name)
	switch {
	case errors.Is(err, services.ErrUserExists):
		return fmt.Errorf("user %s already exists", name)
	case errors.Is(err, services.ErrInvalidUserName):
		return fmt.Errorf("invalid user name %q", name)
	case err != nil:
		return err
	}
	fmt.Fprintf(out, "Created user %s (id %d)\n", user.Name, user.ID)
	return nil
}

func runUserList(j *journal, out io.Writer) error {
	users, err := j.users.ListUsers()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(out, "No users found.")
		return nil
	}

	faint := color.New(color.Faint)
	for _, user := range users {
		fmt.Fprintf(out, "%s %s %s\n",
			faint.Sprintf("%4d", user.ID),
			padRight(user.Name, 24),
			faint.Sprint(user.CreatedAt.Format("2006-01-02")))
	}
	return nil
}
