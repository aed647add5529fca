package arbor

// nodeIDCounter is a plain counter (no atomic — arbor is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is one element of the scene hierarchy. A single flat struct is used
// for every node; what a node looks like is delegated to its Visual.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Tag  int

	// Hierarchy. Parent is a non-owning back-reference; the owning
	// direction is strictly parent → children.
	Parent   *Node
	children []*Node

	// Transform (local, relative to Parent)
	X, Y           float64
	ScaleX, ScaleY float64
	Angle          float64 // degrees, clockwise; 0 faces up

	// Computed during Visit
	localTransform [6]float64
	worldTransform [6]float64
	transformDirty bool

	// Attached drawable, or nil. At most one per node.
	visual Visual

	// Metadata
	UserData any

	// Internal
	disposed bool
}

// NewNode creates a detached node with identity transform defaults.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		ScaleX:         1,
		ScaleY:         1,
		localTransform: identityTransform,
		worldTransform: identityTransform,
		transformDirty: true,
	}
}

// --- Tree manipulation ---

// AddChild appends child at the end of this node's child list. The child
// list order is the traversal and draw order.
//
// Panics under the same conditions as AddChildAt: the child must be
// detached (no parent) and adding it must not create a cycle.
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, len(n.children))
}

// AddChildAt splices child into the child list at the given index and sets
// its Parent reference to this node.
//
// Misuse is a programming error, not a recoverable condition, so AddChildAt
// panics if child is nil, already has a parent, is already present in this
// node's child list, is an ancestor of this node (cycle), or index is out
// of range. Detach a node with RemoveFromParent before reattaching it.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("arbor: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if child.Parent != nil {
		panic("arbor: child already has a parent; call RemoveFromParent first")
	}
	if n.containsChild(child) {
		panic("arbor: node is already a child of this parent")
	}
	if n.inParentChainOrSelf(child) {
		panic("arbor: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("arbor: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	// The child's cached world transform was composed against the old
	// coordinate frame; recompose under this parent on the next Visit.
	child.transformDirty = true
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node: it is removed from the child
// list and its Parent reference is cleared. A node that is not a child of
// this node is left untouched; absence is a no-op, not a failure.
//
// The removed subtree keeps its transform caches and dirty flags as-is.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent != n {
		return
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildren applies RemoveChild to each element in list order.
// Children absent from this node are skipped without affecting the rest.
func (n *Node) RemoveChildren(children []*Node) {
	for _, child := range children {
		n.RemoveChild(child)
	}
}

// RemoveAllChildren clears every child's Parent reference and empties the
// child list.
func (n *Node) RemoveAllChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// RemoveChildAt removes and returns the child at the given index.
// Panics if index is out of range.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("arbor: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op for a root.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("arbor: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("arbor: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Lookup ---

// ChildWithName scans direct children (not descendants) and returns the
// first child whose Name matches, or nil.
func (n *Node) ChildWithName(name string) *Node {
	for _, child := range n.children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// ChildWithTag scans direct children (not descendants) and returns the
// first child whose Tag matches, or nil.
func (n *Node) ChildWithTag(tag int) *Node {
	for _, child := range n.children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// InParentHierarchy walks parent references upward from this node and
// reports whether other is encountered. Comparison is by identity. A node
// is not in its own parent hierarchy, and a root has no ancestors.
func (n *Node) InParentHierarchy(other *Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == other {
			return true
		}
	}
	return false
}

// --- Disposal ---

// Dispose detaches this node from its parent, marks it as disposed, and
// recursively disposes all descendants. Attached visuals are released.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	if n.visual != nil {
		n.visual.setNode(nil)
		n.visual = nil
	}
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// inParentChainOrSelf reports whether candidate is n itself or one of n's
// ancestors. Terminates because the tree is a strict forest.
func (n *Node) inParentChainOrSelf(candidate *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (n *Node) containsChild(child *Node) bool {
	for _, c := range n.children {
		if c == child {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
