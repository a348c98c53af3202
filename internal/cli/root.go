package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/timeu6/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	loaded, cfgErr := LoadConfig()
	cfg = loaded
	if cfg == nil {
		cfg = &Config{}
	}

	rootCmd := &cobra.Command{
		Use:   "timeu6",
		Short: "Playing-time tracker for U6 soccer matches",
		Long: `timeu6 keeps the match clock for a U6 soccer game and tracks how long
each child has spent on the field, so playing time can be shared fairly.

State is saved after every change and picked up again on the next run.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}

			logger, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			factoryCfg, err := cfg.FactoryConfig(logger)
			if err != nil {
				return err
			}

			app, err = factory.New(factoryCfg)
			if err != nil {
				return err
			}

			// Saved state must be in place before any command runs
			app.Gateway.Restore(cmd.Context())
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, sqlite, redis (env: TIMEU6_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "SQLite database path (env: TIMEU6_SQLITE_PATH)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: TIMEU6_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error (env: TIMEU6_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: TIMEU6_OUTPUT)")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newFieldCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newStateCmd())

	return rootCmd
}

// Run executes the command tree with args, then drains pending saves and closes storage
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)

	if app != nil {
		if closeErr := app.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		app = nil
	}
	return err
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// newOutput returns a formatter writing to the command's stdout
func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
