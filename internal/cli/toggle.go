package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tudu/internal/store"
)

var toggleTodoCmd = &cobra.Command{
	Use:     "toggle-todo [todo id] [username]",
	Aliases: []string{"toggle_todo"},
	Short:   "Toggle the done state of a todo for a given user",
	Args:    cobra.ExactArgs(2),
	RunE:    runToggleTodo,
}

func runToggleTodo(cmd *cobra.Command, args []string) error {
	todoID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid todo id %q", args[0])
	}
	username := args[1]

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		// Read-modify-write inside one transaction so the flip is atomic.
		return st.WithTx(ctx, func(tx *store.Store) error {
			todo, err := tx.Todos().GetByID(ctx, todoID)
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "This todo doesn't exist")
				return nil
			}
			if err != nil {
				return err
			}

			owner, err := tx.Users().GetByID(ctx, todo.UserID)
			if err != nil {
				return err
			}
			if owner.Username != username {
				fmt.Fprintf(cmd.OutOrStdout(), "This todo doesn't belong to %s\n", username)
				return nil
			}

			if err := tx.Todos().SetDone(ctx, todo.ID, !todo.Done); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Todo item's done state set to %t\n", !todo.Done)
			return nil
		})
	})
}
