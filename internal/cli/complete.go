package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tudu/internal/store"
)

var completeUserTodosCmd = &cobra.Command{
	Use:     "complete-user-todos [username]",
	Aliases: []string{"complete_user_todos"},
	Short:   "Mark all todos for a given username as complete",
	Args:    cobra.ExactArgs(1),
	RunE:    runCompleteUserTodos,
}

func runCompleteUserTodos(cmd *cobra.Command, args []string) error {
	username := args[0]

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		user, err := st.Users().GetByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "User doesn't exist")
			return nil
		}
		if err != nil {
			return err
		}

		return st.WithTx(ctx, func(tx *store.Store) error {
			total, err := tx.Todos().CountByOwner(ctx, user.ID)
			if err != nil {
				return err
			}
			if total == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No todos found for %s\n", username)
				return nil
			}

			// Only still-pending todos are flipped, so the reported count
			// is the number that actually changed and a second run
			// reports zero.
			n, err := tx.Todos().MarkAllDone(ctx, user.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d todos as complete for %s\n", n, username)
			return nil
		})
	})
}
