package arbor

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

const degToRad = math.Pi / 180

// computeLocalTransform derives the object-space matrix from the node's
// position, scale, and angle. Returns [a, b, c, d, tx, ty].
//
// Composition order: rotate, then scale the rotated axes, then translate.
// Angle is in clockwise degrees; with Y increasing downward the standard
// sine/cosine composition already turns clockwise on screen.
func computeLocalTransform(n *Node) [6]float64 {
	sin, cos := 0.0, 1.0
	if n.Angle != 0 {
		// Skip trig on the common untransformed case so an angle of
		// exactly 0 produces a bit-exact axis-aligned matrix.
		sin, cos = math.Sincos(n.Angle * degToRad)
	}
	return [6]float64{
		cos * n.ScaleX,
		sin * n.ScaleX,
		-sin * n.ScaleY,
		cos * n.ScaleY,
		n.X,
		n.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// --- Traversal ---

// Visit refreshes this node's world transform and recurses into children in
// child-list order. Call it once per frame on each root with parentDirty
// false; pass true to force unconditional recomputation of the whole
// subtree (for example after bulk-editing fields directly).
//
// A node is recomputed when it or any ancestor changed since the last
// Visit, and at most once per call even if several ancestors are dirty.
// An untouched subtree under a clean ancestor costs one flag check per
// node. Parents are always refreshed before their children compose against
// them (pre-order).
//
// Whenever the node's world transform is rebuilt, its attached visual (if
// any) is marked for redraw.
//
// stats, if non-nil, counts every node reached regardless of dirtiness.
func (n *Node) Visit(parentDirty bool, stats *FrameStats) {
	dirty := parentDirty || n.transformDirty
	if dirty {
		if n.transformDirty {
			n.localTransform = computeLocalTransform(n)
			n.transformDirty = false
		}
		if n.Parent != nil {
			n.worldTransform = multiplyAffine(n.Parent.worldTransform, n.localTransform)
		} else {
			n.worldTransform = n.localTransform
		}
		if n.visual != nil {
			n.visual.MarkForRedraw()
		}
		if stats != nil {
			stats.Recomputed++
		}
	}
	for _, child := range n.children {
		child.Visit(dirty, stats)
	}
	if stats != nil {
		stats.NodesVisited++
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetAngle sets the node's angle (clockwise degrees) and marks it dirty.
func (n *Node) SetAngle(degrees float64) {
	n.Angle = degrees
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation on
// the next Visit. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// IsDirty reports whether the node's local transform is stale. The cached
// world transform is only trustworthy after a Visit in which this flag and
// every ancestor's flag were observed.
func (n *Node) IsDirty() bool {
	return n.transformDirty
}

// WorldTransform returns the cached world-space matrix, valid in the
// coordinate frame of the ultimate root as of the last Visit.
func (n *Node) WorldTransform() [6]float64 {
	return n.worldTransform
}

// GeoM returns the cached world transform as an ebiten.GeoM, ready to pass
// to DrawImageOptions.
func (n *Node) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	m := n.worldTransform
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local
// coordinate space, using the world transform cached by the last Visit.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(n.worldTransform)
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to world-space, using the
// world transform cached by the last Visit.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}
