package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tudu/internal/store"
	"github.com/eleven-am/tudu/pkg/passhash"
)

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Initialize the database",
	Long: `Drops and recreates all tables, then seeds a sample user "bob" with one
todo. Any existing data is lost.`,
	Args: cobra.NoArgs,
	RunE: runInitialize,
}

func runInitialize(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		if err := st.Reset(); err != nil {
			return err
		}

		hash, err := passhash.Hash("bobpass")
		if err != nil {
			return err
		}

		err = st.WithTx(ctx, func(tx *store.Store) error {
			bob, err := tx.Users().Create(ctx, "bob", "bob@mail.com", hash)
			if err != nil {
				return err
			}
			_, err = tx.Todos().Create(ctx, bob.ID, "Wash dishes")
			return err
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Database Initialized")
		return nil
	})
}
