// Package render draws a built process tree as connected ASCII branch art.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zarmars/pstree/internal/tree"
)

// Options controls rendering.
type Options struct {
	// ShowPIDs appends "(pid)" to every label.
	ShowPIDs bool
	// Color styles labels with ANSI sequences. Column math always uses the
	// unstyled width, so alignment is unaffected.
	Color    bool
}

const (
	forkConnector     = "--+--"
	straightConnector = "-----"
	siblingStub       = "--"
)

var (
	rootStyle   = lipgloss.NewStyle().Bold(true)
	threadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	pidStyle    = lipgloss.NewStyle().Faint(true)
)

// branch tracks one open ancestor level during the traversal: the column
// of its connector junction and whether it still has siblings to print.
type branch struct {
	col  int
	more bool
}

// Render produces the multi-line ASCII view of the tree rooted at root in
// a single pre-order depth-first pass. Output ends with a newline and is
// deterministic for a given tree and options.
func Render(root *tree.Node, opts Options) string {
	var b strings.Builder
	renderNode(&b, root, 0, nil, opts)
	b.WriteByte('\n')
	return b.String()
}

func renderNode(b *strings.Builder, n *tree.Node, col int, stack []branch, opts Options) {
	text, width := label(n, opts)
	b.WriteString(text)
	if len(n.Children) == 0 {
		return
	}

	// The junction is the '+' column of the connector; continuation bars
	// for this level land there. Children start right after the connector.
	junction := col + width + 2
	childCol := col + width + 5
	if len(n.Children) > 1 {
		b.WriteString(forkConnector)
	} else {
		b.WriteString(straightConnector)
	}

	stack = append(stack, branch{col: junction})
	last := len(stack) - 1
	for i, c := range n.Children {
		stack[last].more = i < len(n.Children)-1
		renderNode(b, c, childCol, stack, opts)
		if stack[last].more {
			b.WriteByte('\n')
			writeContinuation(b, stack)
		}
	}
}

// writeContinuation emits the prefix of the line on which the next sibling
// continues: for every open ancestor level a vertical bar at its junction
// column if that level still has siblings pending, space otherwise, then
// a two-dash stub leading into the sibling's label. The stub ends exactly
// at the column where the previous sibling's label started.
func writeContinuation(b *strings.Builder, stack []branch) {
	col := 0
	for _, lv := range stack {
		for ; col < lv.col; col++ {
			b.WriteByte(' ')
		}
		if lv.more {
			b.WriteByte('|')
		} else {
			b.WriteByte(' ')
		}
		col++
	}
	b.WriteString(siblingStub)
}

// label formats a node's display text and returns it with its unstyled
// width. Threads render brace-wrapped with their owner's name.
func label(n *tree.Node, opts Options) (string, int) {
	name := n.Label
	if n.IsThread {
		name = "{" + name + "}"
	}
	width := len(name)

	var pid string
	if opts.ShowPIDs {
		pid = "(" + strconv.Itoa(n.PID) + ")"
		width += len(pid)
	}

	if opts.Color {
		switch {
		case n.IsThread:
			name = threadStyle.Render(name)
		case n.PID == tree.KernelPID || n.IsRoot:
			name = rootStyle.Render(name)
		}
		if pid != "" {
			pid = pidStyle.Render(pid)
		}
	}
	return name + pid, width
}
