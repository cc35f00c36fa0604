package cmd

import (
	"context"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/confio/tfi/x/pair/types"
)

type configKey struct{}

// NewRootCmd creates the tfi command: offline pricing tools for
// constant-product pairs.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "tfi",
		Short:         "Constant-product pair calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			cfg, err := loadConfig(v, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg.LogLevel)
			if err != nil {
				return err
			}
			cfg.Logger = logger
			logger.Debug("configuration loaded", "file", cfg.ConfigFile, "commission", cfg.Commission.String(), "output", cfg.Output)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String(FlagConfig, "", "config file (default ./tfi.yaml or $HOME/.tfi/tfi.yaml)")
	pf.StringP(FlagOutput, "o", OutputText, "output format (text|json)")
	pf.String(FlagLogLevel, "info", "log level (debug|info|warn|error or module:level pairs)")
	pf.String(FlagCommission, types.DefaultCommissionRate().String(), "commission rate taken from swap returns")

	rootCmd.AddCommand(
		NewQuoteCmd(),
		NewConfigCmd(),
		NewServeCmd(),
	)
	return rootCmd
}

func configFromCmd(cmd *cobra.Command) Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(Config); ok {
		return cfg
	}
	return Config{Commission: types.DefaultCommissionRate(), Output: OutputText, Logger: log.NewNopLogger()}
}
