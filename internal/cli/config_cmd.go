package cli

import (
	"encoding/json"
	"fmt"

	"github.com/zarmars/pstree/internal/config"
)

// ConfigCmd groups configuration inspection commands
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Show the effective configuration"`
	Path ConfigPathCmd `cmd:"" help:"Show the path of the loaded config file"`
}

// ConfigShowCmd shows the effective configuration
type ConfigShowCmd struct{}

// configOutput represents the json output for the effective configuration
type configOutput struct {
	Type     string                `json:"type"`
	Format   string                `json:"format"`
	ProcRoot string                `json:"proc_root"`
	Color    string                `json:"color"`
	Defaults config.DefaultsConfig `json:"defaults"`
}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "json" {
		return json.NewEncoder(globals.Stdout).Encode(configOutput{
			Type:     "config",
			Format:   cfg.Format,
			ProcRoot: cfg.ProcRoot,
			Color:    cfg.Color,
			Defaults: cfg.Defaults,
		})
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format: %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  proc_root: %s\n", cfg.ProcRoot)
	fmt.Fprintf(globals.Stdout, "  color: %s\n", cfg.Color)
	fmt.Fprintln(globals.Stdout, "  Defaults:")
	fmt.Fprintf(globals.Stdout, "    show_pids: %v\n", cfg.Defaults.ShowPIDs)
	fmt.Fprintf(globals.Stdout, "    numeric_sort: %v\n", cfg.Defaults.NumericSort)
	return nil
}

// ConfigPathCmd shows which config file was loaded
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "json" {
		return json.NewEncoder(globals.Stdout).Encode(map[string]string{
			"type": "config_path",
			"path": path,
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		return nil
	}
	fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	return nil
}
