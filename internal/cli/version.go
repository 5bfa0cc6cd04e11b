package cli

import (
	"encoding/json"
	"fmt"
)

// Version information, overridden at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

// VersionCmd shows version information
type VersionCmd struct{}

// VersionOutput represents the json output for version information
type VersionOutput struct {
	Type    string `json:"type"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// Run executes the version command
func (c *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "json" {
		return json.NewEncoder(globals.Stdout).Encode(VersionOutput{
			Type:    "version",
			Version: Version,
			Commit:  Commit,
		})
	}
	fmt.Fprintf(globals.Stdout, "pstree %s (%s)\n", Version, Commit)
	return nil
}
