package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tudu/internal/store"
)

var createCategoryCmd = &cobra.Command{
	Use:     "create-category [username] [category text]",
	Aliases: []string{"create_category"},
	Short:   "Create a new category for a given user",
	Args:    cobra.ExactArgs(2),
	RunE:    runCreateCategory,
}

var listUserCategoriesCmd = &cobra.Command{
	Use:     "list-user-categories [username]",
	Aliases: []string{"list_user_categories"},
	Short:   "List all categories for a given username",
	Args:    cobra.ExactArgs(1),
	RunE:    runListUserCategories,
}

var listTodoCategoriesCmd = &cobra.Command{
	Use:     "list-todo-categories [todo id] [username]",
	Aliases: []string{"list_todo_categories"},
	Short:   "List all categories for a given todo",
	Args:    cobra.ExactArgs(2),
	RunE:    runListTodoCategories,
}

var assignCategoryCmd = &cobra.Command{
	Use:     "assign-category-to-todo [username] [todo id] [category text]",
	Aliases: []string{"assign_category_to_todo"},
	Short:   "Assign a category to a todo, creating the category if needed",
	Args:    cobra.ExactArgs(3),
	RunE:    runAssignCategory,
}

func runCreateCategory(cmd *cobra.Command, args []string) error {
	username, text := args[0], args[1]

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		user, err := st.Users().GetByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "User doesn't exist")
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := st.Categories().Create(ctx, user.ID, text); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				fmt.Fprintln(cmd.OutOrStdout(), "Category exists! Skipping creation")
				return nil
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Category added for user")
		return nil
	})
}

func runListUserCategories(cmd *cobra.Command, args []string) error {
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

		categories, err := st.Categories().ListByOwner(ctx, user.ID)
		if err != nil {
			return err
		}

		if len(categories) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No categories found for %s\n", username)
			return nil
		}
		for _, category := range categories {
			fmt.Fprintln(cmd.OutOrStdout(), category.Text)
		}
		return nil
	})
}

func runListTodoCategories(cmd *cobra.Command, args []string) error {
	todoID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid todo id %q", args[0])
	}
	username := args[1]

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		todo, err := st.Todos().GetByID(ctx, todoID)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "Todo doesn't exist")
			return nil
		}
		if err != nil {
			return err
		}

		owner, err := st.Users().GetByID(ctx, todo.UserID)
		if err != nil {
			return err
		}
		if owner.Username != username {
			fmt.Fprintln(cmd.OutOrStdout(), "Todo doesn't belong to that user")
			return nil
		}

		categories, err := st.Categories().ListForTodo(ctx, todo.ID)
		if err != nil {
			return err
		}

		texts := make([]string, 0, len(categories))
		for _, category := range categories {
			texts = append(texts, category.Text)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Categories: %s\n", strings.Join(texts, ", "))
		return nil
	})
}

func runAssignCategory(cmd *cobra.Command, args []string) error {
	username := args[0]
	todoID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid todo id %q", args[1])
	}
	text := args[2]

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
			category, created, err := tx.Categories().FindOrCreate(ctx, user.ID, text)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintln(cmd.OutOrStdout(), "Category didn't exist for user, creating it")
			}

			todo, err := tx.Todos().GetByIDForOwner(ctx, todoID, user.ID)
			if errors.Is(err, store.ErrNotFound) {
				// Commit anyway: a category created on the way stays, the
				// way the operation has always behaved.
				fmt.Fprintln(cmd.OutOrStdout(), "Todo doesn't exist for user")
				return nil
			}
			if err != nil {
				return err
			}

			// Set-add: assigning the same pair twice leaves one row.
			if _, err := tx.Categories().Assign(ctx, todo.ID, category.ID); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Added category to todo")
			return nil
		})
	})
}
