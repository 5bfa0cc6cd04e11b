package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/zarmars/pstree/internal/cli"
	"github.com/zarmars/pstree/internal/config"
)

func main() {
	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing; CLI flags override these.
	vars := kong.Vars{
		"version":             fmt.Sprintf("pstree %s (%s)", cli.Version, cli.Commit),
		"config_format":       cfg.Format,
		"config_proc_root":    cfg.ProcRoot,
		"config_color":        cfg.Color,
		"config_show_pids":    strconv.FormatBool(cfg.Defaults.ShowPIDs),
		"config_numeric_sort": strconv.FormatBool(cfg.Defaults.NumericSort),
	}

	ctx := kong.Parse(&c,
		kong.Name("pstree"),
		kong.Description("Display running processes and their threads as a tree"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
