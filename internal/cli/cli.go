// Package cli defines the pstree command surface and wires the collector,
// builder and renderer together.
package cli

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/zarmars/pstree/internal/config"
)

// CLI is the top-level kong command grammar.
type CLI struct {
	Format      string           `help:"Output format: text or json" enum:"text,json" default:"${config_format}"`
	Quiet       bool             `short:"q" help:"Suppress informational output"`
	Verbose     bool             `help:"Enable verbose debug logging"`
	ProcRoot    string           `name:"proc-root" help:"Procfs mount point to scan" default:"${config_proc_root}"`
	Color       string           `help:"Colorize tree output: auto, always or never" enum:"auto,always,never" default:"${config_color}"`
	VersionFlag kong.VersionFlag `short:"V" name:"version" help:"Print version information and quit"`

	Show    ShowCmd    `cmd:"" default:"withargs" help:"Render the process tree (default)"`
	List    ListCmd    `cmd:"" help:"List processes as a flat table"`
	Config  ConfigCmd  `cmd:"" help:"Inspect configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals carries the resolved global options plus the output streams,
// injected so tests can capture them.
type Globals struct {
	Format   string
	Quiet    bool
	Verbose  bool
	ProcRoot string
	Color    string
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.Config

	logger *zap.SugaredLogger
}

// NewGlobalsWithConfig resolves global options from parsed flags and the
// loaded configuration.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:   c.Format,
		Quiet:    c.Quiet || cfg.Quiet,
		Verbose:  c.Verbose || cfg.Verbose,
		ProcRoot: c.ProcRoot,
		Color:    c.Color,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Config:   cfg,
	}
	g.logger = newDebugLogger(g.Verbose)
	return g
}

// Logger returns the shared debug logger, creating a nop logger for
// Globals assembled literally in tests.
func (g *Globals) Logger() *zap.SugaredLogger {
	if g.logger == nil {
		g.logger = newDebugLogger(g.Verbose)
	}
	return g.logger
}

// Debug logs a formatted debug message when --verbose is set.
func (g *Globals) Debug(format string, args ...interface{}) {
	g.Logger().Debugf(format, args...)
}

// colorEnabled resolves the --color tri-state against the actual stdout.
func (g *Globals) colorEnabled() bool {
	switch g.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := g.Stdout.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
