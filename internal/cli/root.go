// Package cli wires each todo command to its repository sequence. Every
// command is one short-lived unit of work: open the store, run one or two
// queries, print a single result line, exit.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Global configuration variables
var (
	configFile  string
	config      *Config
	databaseURL string
	dbDriver    string
	debug       bool

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tudu",
		Short: "tudu - database-backed todo list manager",
		Long: `tudu is a todo list manager backed by a relational database.

Users own todos and categories; todos and categories are linked through a
many-to-many association. Each command performs a single unit of work
against the database and prints one result line.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			// A .env file is optional; flags and tudu.yaml still win.
			_ = godotenv.Load()

			var err error
			config, err = LoadConfig(configFile)
			if err != nil {
				logger.Warn("failed to load config file", "error", err)
			}

			if databaseURL == "" {
				databaseURL = os.Getenv("TUDU_DATABASE_URL")
			}
			if databaseURL == "" && config != nil {
				databaseURL = config.Database.URL
			}
			if databaseURL == "" {
				databaseURL = "tudu.db"
			}

			if dbDriver == "" {
				dbDriver = os.Getenv("TUDU_DATABASE_DRIVER")
			}
			if dbDriver == "" && config != nil {
				dbDriver = config.Database.Driver
			}
			if dbDriver == "" {
				dbDriver = "sqlite"
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: tudu.yaml)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "url", "", "database connection URL (default: tudu.db)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "database driver (sqlite, postgres)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(initializeCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(addTaskCmd)
	rootCmd.AddCommand(toggleTodoCmd)
	rootCmd.AddCommand(listTodosCmd)
	rootCmd.AddCommand(deleteTodoCmd)
	rootCmd.AddCommand(completeUserTodosCmd)
	rootCmd.AddCommand(createCategoryCmd)
	rootCmd.AddCommand(listUserCategoriesCmd)
	rootCmd.AddCommand(listTodoCategoriesCmd)
	rootCmd.AddCommand(assignCategoryCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
