package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/confio/tfi/x/pair/types"
)

const (
	envPrefix      = "TFI"
	configFileName = "tfi"

	FlagConfig     = "config"
	FlagOutput     = "output"
	FlagLogLevel   = "log-level"
	FlagCommission = "commission"

	OutputText = "text"
	OutputJSON = "json"
)

// Config is the effective CLI configuration after merging flags, environment
// and the config file (in that order of precedence).
type Config struct {
	Commission math.LegacyDec `yaml:"-"`
	Output     string         `yaml:"output"`
	LogLevel   string         `yaml:"log-level"`
	ConfigFile string         `yaml:"config-file,omitempty"`

	Logger log.Logger `yaml:"-"`
}

// loadConfig reads tfi.yaml (or --config) and TFI_* variables into v.
func loadConfig(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	if file := v.GetString(FlagConfig); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tfi"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	// yaml decodes bare numbers as floats
	rawCommission, err := cast.ToStringE(v.Get(FlagCommission))
	if err != nil {
		return Config{}, fmt.Errorf("commission: %w", err)
	}
	commission, err := math.LegacyNewDecFromStr(rawCommission)
	if err != nil {
		return Config{}, fmt.Errorf("commission %q: %w", rawCommission, err)
	}
	if err := types.ValidateCommission(commission); err != nil {
		return Config{}, err
	}

	output := v.GetString(FlagOutput)
	if output != OutputText && output != OutputJSON {
		return Config{}, fmt.Errorf("unknown output format %q", output)
	}

	return Config{
		Commission: commission,
		Output:     output,
		LogLevel:   v.GetString(FlagLogLevel),
		ConfigFile: v.ConfigFileUsed(),
	}, nil
}

func newLogger(cmd *cobra.Command, level string) (log.Logger, error) {
	filter, err := log.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewLogger(cmd.ErrOrStderr(), log.FilterOption(filter)), nil
}

// NewConfigCmd prints the effective configuration.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromCmd(cmd)
			bz, err := yaml.Marshal(struct {
				Config     `yaml:",inline"`
				Commission string `yaml:"commission"`
			}{cfg, cfg.Commission.String()})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(bz)
			return err
		},
	}
}
