package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/confio/tfi/api"
	"github.com/confio/tfi/telemetry"
)

const (
	FlagHost        = "host"
	FlagPort        = "port"
	FlagCORSOrigins = "cors-origins"
	FlagRateLimit   = "rate-limit"
	FlagOTLP        = "otlp-endpoint"
	FlagSampleRate  = "trace-sample-rate"
)

// NewServeCmd runs the HTTP quote server until interrupted.
func NewServeCmd() *cobra.Command {
	defaults := api.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve quotes and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromCmd(cmd)
			serverCfg, err := serverConfig(cmd, cfg)
			if err != nil {
				return err
			}
			shutdown, err := setupTelemetry(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					cfg.Logger.Error("telemetry shutdown failed", "error", err)
				}
			}()

			server, err := api.NewServer(cfg.Logger, serverCfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx)
		},
	}

	cmd.Flags().String(FlagHost, defaults.Host, "listen host")
	cmd.Flags().String(FlagPort, defaults.Port, "listen port")
	cmd.Flags().StringSlice(FlagCORSOrigins, defaults.CORSOrigins, "allowed CORS origins")
	cmd.Flags().Int(FlagRateLimit, defaults.RateLimitRPS, "requests per second allowed per client IP")
	cmd.Flags().String(FlagOTLP, "", "OTLP/HTTP trace collector URL, e.g. http://localhost:4318 (tracing is off when empty)")
	cmd.Flags().Float64(FlagSampleRate, 0.1, "fraction of quote requests traced")
	return cmd
}

func setupTelemetry(cmd *cobra.Command) (telemetry.ShutdownFunc, error) {
	endpoint, err := cmd.Flags().GetString(FlagOTLP)
	if err != nil {
		return nil, err
	}
	rate, err := cmd.Flags().GetFloat64(FlagSampleRate)
	if err != nil {
		return nil, err
	}
	return telemetry.Setup(cmd.Context(), endpoint, rate)
}

func serverConfig(cmd *cobra.Command, cfg Config) (*api.Config, error) {
	serverCfg := api.DefaultConfig()
	serverCfg.Commission = cfg.Commission

	var err error
	if serverCfg.Host, err = cmd.Flags().GetString(FlagHost); err != nil {
		return nil, err
	}
	if serverCfg.Port, err = cmd.Flags().GetString(FlagPort); err != nil {
		return nil, err
	}
	if serverCfg.CORSOrigins, err = cmd.Flags().GetStringSlice(FlagCORSOrigins); err != nil {
		return nil, err
	}
	if serverCfg.RateLimitRPS, err = cmd.Flags().GetInt(FlagRateLimit); err != nil {
		return nil, err
	}
	return serverCfg, serverCfg.Validate()
}
