package tree

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/zarmars/pstree/internal/proc"
)

// ErrEmptyInput indicates a build was attempted with no records at all.
var ErrEmptyInput = errors.New("no process records")

// Builder assembles record sets into a single rooted tree.
type Builder struct {
	logger *zap.SugaredLogger
}

// NewBuilder creates a Builder. A nil logger disables logging.
func NewBuilder(logger *zap.SugaredLogger) *Builder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Builder{logger: logger}
}

// Build constructs the process tree from records and returns the synthetic
// kernel node as its root. The real init node (pid 1) hangs beneath it.
//
// Records must arrive in the order the collector emits them: ascending pid,
// threads directly after their owner. Children are attached in that order,
// so no sort is needed here. A thread attaches under its thread-group
// leader (tgid), every other node under its ppid. A node whose parent is
// absent from the record set is attached under the kernel node and
// reported, rather than aborting the whole build.
func (b *Builder) Build(records []proc.Record) (*Node, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	nodes := make([]*Node, 0, len(records)+1)
	for _, r := range records {
		if !r.Valid() {
			return nil, fmt.Errorf("record for pid %d: %w", r.PID, proc.ErrMalformed)
		}
		nodes = append(nodes, newNode(r))
	}
	kernel := newKernelNode()
	nodes = append(nodes, kernel)

	// Transient pid lookup, used only for edge resolution.
	index := make(map[int]*Node, len(nodes))
	for _, n := range nodes {
		index[n.PID] = n
	}

	for _, n := range nodes {
		if n == kernel {
			continue
		}
		key := n.PPID
		if n.IsThread {
			key = n.TGID
		}
		parent, ok := index[key]
		if !ok || parent == n {
			b.logger.Warnw("parent not found, attaching under kernel",
				"pid", n.PID, "label", n.Label, "parent", key)
			parent = kernel
		}
		parent.Children = append(parent.Children, n)
	}
	return kernel, nil
}
