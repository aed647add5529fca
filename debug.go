package arbor

import (
	"fmt"
	"os"
)

// globalDebug enables extra invariant checks on tree mutation. A plain
// package variable (no atomic) — arbor is single-threaded.
var globalDebug bool

// SetDebug enables or disables debug mode. When enabled, tree operations on
// disposed nodes panic with a descriptive message and tree depth warnings
// are printed to stderr.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Only called when debug mode is on; in
// release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("arbor debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// String formats the frame counters for debug overlays and logs.
func (s *FrameStats) String() string {
	return fmt.Sprintf("visited: %d | recomputed: %d", s.NodesVisited, s.Recomputed)
}
