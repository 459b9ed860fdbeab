package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	configapp "helpdesk-assistant/internal/features/config/application"
	"helpdesk-assistant/internal/logging"
)

type rootOptions struct {
	configPath string
	envFile    string
	verbose    bool

	logger *zap.Logger
}

// NewRootCmd builds the helpdesk command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "helpdesk",
		Short: "AI helpdesk assistant for data center technicians",
		Long: `helpdesk turns a short problem description into a troubleshooting checklist
or a customer reply, using playbooks from kb.yaml and a hosted language model.

Run "helpdesk serve" for the web form or "helpdesk generate" for a one-shot answer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger

			if err := godotenv.Load(opts.envFile); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					logger.Debug("no .env file found, using environment variables", zap.String("path", opts.envFile))
				} else {
					logger.Warn("failed to load .env file", zap.String("path", opts.envFile), zap.Error(err))
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", configapp.DefaultConfigPath, "Path to the JSON app config")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to a .env file to load")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newGenerateCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(version),
	)

	return rootCmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "helpdesk version %s\n", version)
		},
	}
}
