// Package config loads the logchain driver configuration.
//
// Values come from, highest precedence first: command-line flags that
// were explicitly set, an optional YAML config file, and the defaults in
// SetDefaults. Environment variables are not consulted.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/philipp01105/logchain/chain"
)

// Config holds the driver settings
type Config struct {
	// ErrorLog is the file Error messages are appended to
	ErrorLog string `mapstructure:"error_log"`
	// Lock enables the cross-process lock around appends to ErrorLog
	Lock bool `mapstructure:"lock"`
	// LockTimeout bounds the wait for that lock
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
	// Debug enables debug diagnostics on stderr
	Debug bool `mapstructure:"debug"`
}

// flagKeys maps config keys to the flag names they are bound to
var flagKeys = map[string]string{
	"error_log":    "error-log",
	"lock":         "lock",
	"lock_timeout": "lock-timeout",
	"debug":        "debug",
}

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("error_log", chain.DefaultErrorLog)
	v.SetDefault("lock", false)
	v.SetDefault("lock_timeout", 5*time.Second)
	v.SetDefault("debug", false)
}

// Load reads the config file at path (skipped when empty) and overlays
// any flags from flags that match a config key.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c Config) Validate() error {
	if c.ErrorLog == "" {
		return errors.New("error_log must not be empty")
	}
	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must not be negative, got %s", c.LockTimeout)
	}
	return nil
}
