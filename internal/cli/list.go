package cli

import (
	"encoding/json"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/zarmars/pstree/internal/proc"
)

// ListCmd lists processes as a flat table
type ListCmd struct {
	Threads bool `help:"Include per-thread records"`
}

// Run executes the list command
func (c *ListCmd) Run(globals *Globals) error {
	collector := proc.NewCollector(globals.ProcRoot, globals.Logger())
	records, err := collector.Snapshot()
	if err != nil {
		return outputError(globals, "SCAN_FAILED", err)
	}

	if !c.Threads {
		records = lo.Filter(records, func(r proc.Record, _ int) bool {
			return !r.IsThread()
		})
	}

	if globals.Format == "json" {
		encoder := json.NewEncoder(globals.Stdout)
		for _, r := range records {
			if err := encoder.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewTable(globals.Stdout)
	table.Header("PID", "TGID", "PPID", "THREADS", "NAME")
	rows := lo.Map(records, func(r proc.Record, _ int) []string {
		return []string{
			strconv.Itoa(r.PID),
			strconv.Itoa(r.TGID),
			strconv.Itoa(r.PPID),
			strconv.Itoa(r.Threads),
			r.Name,
		}
	})
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
