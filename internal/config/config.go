// Package config loads pstree configuration from files and environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format   string `mapstructure:"format"`
	Quiet    bool   `mapstructure:"quiet"`
	Verbose  bool   `mapstructure:"verbose"`
	ProcRoot string `mapstructure:"proc_root"`
	Color    string `mapstructure:"color"`

	// Default values for the show command
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default flag values for the show command
type DefaultsConfig struct {
	ShowPIDs    bool `mapstructure:"show_pids"`
	NumericSort bool `mapstructure:"numeric_sort"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:   "text",
		Quiet:    false,
		Verbose:  false,
		ProcRoot: "/proc",
		Color:    "auto",
		Defaults: DefaultsConfig{
			ShowPIDs:    false,
			NumericSort: false,
		},
	}
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("pstree")
	v.SetConfigType("yaml")

	// Config paths in order of precedence, lowest first
	v.AddConfigPath("/etc/pstree/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "pstree"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".pstree")
	}
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("PSTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "PSTREE_FORMAT")
	v.BindEnv("quiet", "PSTREE_QUIET")
	v.BindEnv("verbose", "PSTREE_VERBOSE")
	v.BindEnv("proc_root", "PSTREE_PROC_ROOT")
	v.BindEnv("color", "PSTREE_COLOR")
	v.BindEnv("defaults.show_pids", "PSTREE_SHOW_PIDS")
	v.BindEnv("defaults.numeric_sort", "PSTREE_NUMERIC_SORT")

	// Set defaults
	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("proc_root", cfg.ProcRoot)
	v.SetDefault("color", cfg.Color)
	v.SetDefault("defaults.show_pids", cfg.Defaults.ShowPIDs)
	v.SetDefault("defaults.numeric_sort", cfg.Defaults.NumericSort)

	// Try to read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that was loaded
func ConfigFile() string {
	v := viper.New()

	v.SetConfigName("pstree")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	// Try .pstree
	v.SetConfigName(".pstree")
	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	return ""
}
