// File: control/loader.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// File and environment configuration for the loop selector.

package control

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/momentics/hioload-loops/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. HIOLOAD_LOOPS_WORKERS.
const EnvPrefix = "HIOLOAD"

// LoopsConfig sizes the selector's execution groups.
type LoopsConfig struct {
	// Prefix namespaces thread names.
	Prefix string `mapstructure:"prefix" validate:"required"`
	// Workers sizes the server and client groups.
	Workers int `mapstructure:"workers" validate:"gt=0"`
	// SelectCount sizes a dedicated accept group; 0 shares the server group.
	SelectCount int `mapstructure:"select_count" validate:"gte=0"`
	// Daemon workers are not joined on shutdown.
	Daemon bool `mapstructure:"daemon"`
	// Affinity pins native workers to CPUs.
	Affinity bool `mapstructure:"affinity"`
}

// Config is the full configuration document.
type Config struct {
	Loops   LoopsConfig   `mapstructure:"loops"`
	Logging logger.Config `mapstructure:"logging"`
}

var validate = validator.New()

// DefaultLoopsConfig mirrors the defaults of a connector runtime: one worker
// per CPU, at least four, sharing the accept group with the server group.
func DefaultLoopsConfig() LoopsConfig {
	workers := runtime.NumCPU()
	if workers < 4 {
		workers = 4
	}
	return LoopsConfig{
		Prefix:  "hioload",
		Workers: workers,
		Daemon:  true,
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultLoopsConfig()
	v.SetDefault("loops.prefix", d.Prefix)
	v.SetDefault("loops.workers", d.Workers)
	v.SetDefault("loops.select_count", d.SelectCount)
	v.SetDefault("loops.daemon", d.Daemon)
	v.SetDefault("loops.affinity", d.Affinity)
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
}

// LoadConfig reads path (YAML, JSON or TOML; empty means defaults only),
// applies HIOLOAD_* environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := decodeWeak(v.AllSettings(), &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and reports every failing field.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
