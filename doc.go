// Package arbor is a scene-graph core for [Ebitengine].
//
// Arbor provides the hierarchical node structure every retained-mode 2D
// game needs: nodes carry a local transform (position, scale, angle), own
// an ordered list of children, and lazily recompute their world-space
// transform during a once-per-frame tree walk. Rendering, cameras, and the
// game loop stay in the embedding application; arbor only answers "where
// is everything this frame, and what needs to be redrawn".
//
// # Quick start
//
// Build a tree, mutate transforms, and call [Node.Visit] once per frame on
// each root:
//
//	root := arbor.NewNode("root")
//	ship := arbor.NewNode("ship")
//	ship.SetVisual(arbor.NewSprite(shipImage))
//	root.AddChild(ship)
//
//	var stats arbor.FrameStats
//	func update() {
//		ship.SetPosition(ship.X+2, ship.Y)
//		stats.Reset()
//		root.Visit(false, &stats)
//	}
//
// Children inherit their parent's transform. A node's world transform is
// recomputed only when the node or one of its ancestors changed since the
// last Visit; an untouched subtree costs one flag check per node.
//
// # Visuals
//
// A node may carry at most one [Visual] — a [Sprite], [Shape], or [Label].
// Attaching a visual maintains the back-reference to its node and a
// needs-redraw flag that Visit raises whenever the transform changes.
// Typed accessors ([Node.Sprite], [Node.Shape], [Node.Label]) panic with
// the node's name on a kind mismatch; misuse is a bug, not an error value.
//
// # Tree discipline
//
// The tree is a strict forest: a node has at most one parent, and
// [Node.AddChildAt] panics rather than silently reparenting or creating a
// cycle. Removal is total — removing an absent child is a no-op.
//
// Arbor is single-threaded by design. The caller owns the whole tree for
// the duration of each frame; no locking is performed.
//
// [Ebitengine]: https://ebitengine.org
package arbor
