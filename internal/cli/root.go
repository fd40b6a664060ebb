package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjaasund/steeldart/internal/config"
	"github.com/mjaasund/steeldart/internal/factory"
)

var (
	app *factory.App
	out *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		serverURL  string
		output     string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "steeldart",
		Short: "Darts score tracker with local persistence and remote sync",
		Long: `steeldart tracks darts games against a shared goal: per-round scores,
running totals with the bust rule, and finish placements.

Finished games are stored locally and uploaded to the remote dart game
service with the sync command; players created offline are reconciled
with the remote roster on the same pass.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.Server.Endpoint = serverURL
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			app, err = factory.New(cfg, logger)
			if err != nil {
				return err
			}

			out = NewOutput(output)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app != nil {
				return app.DB.Close()
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("STEELDART_CONFIG"), "Config file path (env: STEELDART_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Remote server URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newSyncCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
