package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tudu/internal/store"
)

var deleteTodoCmd = &cobra.Command{
	Use:     "delete-todo [todo id]",
	Aliases: []string{"delete_todo"},
	Short:   "Delete a todo by its ID",
	Long: `Hard-deletes a todo. Category assignments referencing the todo are
removed with it.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeleteTodo,
}

func runDeleteTodo(cmd *cobra.Command, args []string) error {
	todoID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid todo id %q", args[0])
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		if err := st.Todos().Delete(ctx, todoID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "Todo doesn't exist")
				return nil
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted todo %d\n", todoID)
		return nil
	})
}
