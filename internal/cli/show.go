package cli

import (
	"encoding/json"
	"fmt"

	"github.com/zarmars/pstree/internal/proc"
	"github.com/zarmars/pstree/internal/render"
	"github.com/zarmars/pstree/internal/tree"
)

// ShowCmd renders the process tree
type ShowCmd struct {
	Pids        bool `short:"p" help:"Show PIDs alongside process names" default:"${config_show_pids}"`
	NumericSort bool `short:"n" name:"numeric-sort" help:"Sort the children of every node by PID" default:"${config_numeric_sort}"`
}

// Run executes the show command
func (c *ShowCmd) Run(globals *Globals) error {
	globals.Debug("scanning %s", globals.ProcRoot)
	collector := proc.NewCollector(globals.ProcRoot, globals.Logger())
	records, err := collector.Snapshot()
	if err != nil {
		return outputError(globals, "SCAN_FAILED", err)
	}

	root, err := tree.NewBuilder(globals.Logger()).Build(records)
	if err != nil {
		return outputError(globals, "BUILD_FAILED", err)
	}
	if c.NumericSort {
		tree.SortByPID(root)
	}

	if globals.Format == "json" {
		return json.NewEncoder(globals.Stdout).Encode(root)
	}

	text := render.Render(root, render.Options{
		ShowPIDs: c.Pids,
		Color:    globals.colorEnabled(),
	})
	if !globals.Quiet {
		// Two blank lines before the tree, by convention.
		fmt.Fprint(globals.Stdout, "\n\n")
	}
	fmt.Fprint(globals.Stdout, text)
	return nil
}
