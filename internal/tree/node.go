// Package tree builds a rooted process/thread tree from status records.
package tree

import (
	"sort"

	"github.com/samber/lo"

	"github.com/zarmars/pstree/internal/proc"
)

// KernelPID is the pid of the synthetic node representing the kernel/idle
// context. It is appended to every build as the implicit super-root.
const KernelPID = 0

// Node is one entry in the process tree. Each node exclusively owns its
// children; the structure is a tree, not a graph.
type Node struct {
	Label      string  `json:"label"`
	PID        int     `json:"pid"`
	TGID       int     `json:"tgid"`
	PPID       int     `json:"ppid"`
	IsThread   bool    `json:"is_thread"`
	HasThreads bool    `json:"has_threads"`
	IsRoot     bool    `json:"is_root"`
	Children   []*Node `json:"children,omitempty"`
}

func newNode(r proc.Record) *Node {
	return &Node{
		Label:      r.Name,
		PID:        r.PID,
		TGID:       r.TGID,
		PPID:       r.PPID,
		IsThread:   r.IsThread(),
		HasThreads: r.HasThreads(),
		IsRoot:     r.PID == 1,
	}
}

func newKernelNode() *Node {
	return &Node{
		Label: "kernel",
		PID:   KernelPID,
		TGID:  KernelPID,
		PPID:  KernelPID,
	}
}

// Count returns the total number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) Count() int {
	return 1 + lo.SumBy(n.Children, func(c *Node) int { return c.Count() })
}

// SortByPID orders the children of every node in the subtree by ascending
// pid. Builds fed pid-ascending records produce already-sorted trees, but
// the builder does not depend on input order, so the sort is real.
func SortByPID(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].PID < n.Children[j].PID
	})
	for _, c := range n.Children {
		SortByPID(c)
	}
}
