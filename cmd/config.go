package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"helpdesk-assistant/internal/config"
	configapp "helpdesk-assistant/internal/features/config/application"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the app config file",
	}
	cmd.AddCommand(newConfigInitCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default app config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewAppConfigService(opts.configPath)

			_, err := store.LoadAppConfig()
			switch {
			case errors.Is(err, config.ErrAppConfigNotFound):
				// nothing to overwrite
			case errors.Is(err, config.ErrAppConfigInvalid):
				opts.logger.Warn("existing app config is malformed", zap.String("path", opts.configPath), zap.Error(err))
				printWarning(cmd.ErrOrStderr(), opts.configPath+" is malformed; the server would ignore it and use defaults")
				if !force {
					return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
				}
			case err != nil:
				return fmt.Errorf("check %s: %w", opts.configPath, err)
			case !force:
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
			}

			if _, err := configapp.NewConfigService(store, opts.logger).SaveDefaults(); err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "Wrote "+opts.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
