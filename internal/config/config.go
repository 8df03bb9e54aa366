// Package config loads jwt command settings from a YAML file, JWT_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds defaults shared by the sign and verify commands
type Config struct {
	Algorithm      string        `mapstructure:"algorithm"`
	Issuer         string        `mapstructure:"issuer"`
	Audience       []string      `mapstructure:"audience"`
	Subject        string        `mapstructure:"subject"`
	KeyFile        string        `mapstructure:"key_file"`
	Secret         string        `mapstructure:"secret"`
	ClockTolerance time.Duration `mapstructure:"clock_tolerance"`
	LogLevel       string        `mapstructure:"log_level"`
}

// InitViper initializes Viper with the search paths, env prefix and defaults
func InitViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName("jwt")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "jwt"))
	}
	v.AddConfigPath("/etc/jwt/")

	v.SetEnvPrefix("JWT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("algorithm", "")
	v.SetDefault("issuer", "")
	v.SetDefault("audience", []string{})
	v.SetDefault("subject", "")
	v.SetDefault("key_file", "")
	v.SetDefault("secret", "")
	v.SetDefault("clock_tolerance", time.Duration(0))
	v.SetDefault("log_level", "info")
}

// Load reads the configuration file, if any, and decodes everything into a Config.
// A missing file in the search paths is not an error; a missing explicit file is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that no command could use
func (c *Config) Validate() error {
	if c.ClockTolerance < 0 {
		return fmt.Errorf("invalid configuration: clock_tolerance must not be negative")
	}
	if c.Algorithm != "" && strings.ToLower(c.Algorithm) != "none" && strings.ToUpper(c.Algorithm) != c.Algorithm {
		return fmt.Errorf("invalid configuration: algorithm %q must be upper case", c.Algorithm)
	}
	return nil
}

// BindFlags registers the persistent flags shared by all commands
func BindFlags(cmd *cobra.Command, v *viper.Viper) error {
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	if err := v.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("failed to bind flag %q: %w", "log-level", err)
	}
	return nil
}

// flagKeys maps command flags to configuration keys
var flagKeys = map[string]string{
	"secret":          "secret",
	"key-file":        "key_file",
	"iss":             "issuer",
	"aud":             "audience",
	"sub":             "subject",
	"clock-tolerance": "clock_tolerance",
}

// BindCommandFlags binds the flags of the command being run. Sign and verify
// both define --secret, so binding happens once the command is known.
func BindCommandFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}
