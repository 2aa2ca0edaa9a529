package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tudu/internal/store"
)

var listTodosCmd = &cobra.Command{
	Use:     "list-todos",
	Aliases: []string{"list_todos"},
	Short:   "List all todos with ID, text, username, and done status",
	Args:    cobra.NoArgs,
	RunE:    runListTodos,
}

func runListTodos(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		todos, err := st.Todos().ListAll(ctx)
		if err != nil {
			return err
		}

		if len(todos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No todos found.")
			return nil
		}

		for _, todo := range todos {
			fmt.Fprintf(cmd.OutOrStdout(), "ID=%d | text='%s' | user=%s | done=%t\n",
				todo.ID, todo.Text, todo.Username, todo.Done)
		}
		return nil
	})
}
