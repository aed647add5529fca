package arbor

import "math"

const radToDeg = 180 / math.Pi

// RotateToVelocity turns the node toward its direction of travel. The
// node's forward direction is up (an angle of 0 faces up), so the target is
// the raw heading of the velocity vector plus 90 degrees.
//
// rate controls how much of the remaining arc is covered per call and must
// lie in [0, 1]: 1 snaps instantly, smaller values approach the target
// asymptotically when called once per frame. Values outside [0, 1] are the
// caller's responsibility; no clamping is performed.
//
// Before interpolating, the current angle is shifted by ±360 when the gap
// to the target exceeds 180 degrees, so the node never spins the long way
// around when crossing the ±180 boundary. The resulting angle is not
// normalized; wrap it yourself if you need a bounded range.
func (n *Node) RotateToVelocity(velocity Vec2, rate float64) {
	target := math.Atan2(velocity.Y, velocity.X)*radToDeg + 90
	if target-n.Angle > 180 {
		n.Angle += 360
	} else if n.Angle-target > 180 {
		n.Angle -= 360
	}
	n.Angle += (target - n.Angle) * rate
	n.transformDirty = true
}
