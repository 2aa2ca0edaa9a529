package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tudu/internal/store"
)

var addTaskCmd = &cobra.Command{
	Use:     "add-task [username] [task]",
	Aliases: []string{"add_task"},
	Short:   "Add a task for a given user",
	Args:    cobra.ExactArgs(2),
	RunE:    runAddTask,
}

func runAddTask(cmd *cobra.Command, args []string) error {
	username, task := args[0], args[1]

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		user, err := st.Users().GetByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "User doesn't exist")
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := st.Todos().Create(ctx, user.ID, task); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Task added for user")
		return nil
	})
}
