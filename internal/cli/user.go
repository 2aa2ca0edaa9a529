package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tudu/internal/store"
	"github.com/eleven-am/tudu/pkg/passhash"
)

var createUserCmd = &cobra.Command{
	Use:     "create-user [username] [email] [password]",
	Aliases: []string{"create_user"},
	Short:   "Create a new user",
	Args:    cobra.ExactArgs(3),
	RunE:    runCreateUser,
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	username, email, password := args[0], args[1], args[2]

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		hash, err := passhash.Hash(password)
		if err != nil {
			return err
		}

		// The unique constraint is the real guard; creating directly and
		// mapping the violation gives a clean message without a lookup race.
		if _, err := st.Users().Create(ctx, username, email, hash); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				fmt.Fprintln(cmd.OutOrStdout(), "Username already exists")
				return nil
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User %s created\n", username)
		return nil
	})
}
