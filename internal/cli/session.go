package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tudu/internal/store"
)

const commandTimeout = 30 * time.Second

// withStore opens the configured database, runs fn, and releases the
// connection on every exit path. All commands go through here so no code
// path can leak a connection or outlive its deadline.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	cfg := store.NewConfig(dbDriver, databaseURL)
	if config != nil && config.Database.MaxConnections > 0 {
		cfg.MaxOpenConns = config.Database.MaxConnections
	}

	logger.Debug("opening store", "driver", cfg.Driver, "url", cfg.URL)

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(ctx, st)
}
