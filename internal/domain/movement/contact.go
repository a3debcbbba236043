package movement

import "math"

// up is the ceiling ray direction in the core's +Y-up convention.
var up = Vec{X: 0, Y: 1}

// groundBandWidthFactor shrinks the ground band slightly inside the
// body so grazing a wall does not read as standing on it.
const groundBandWidthFactor = 0.9

// updateContacts refreshes ground, wall and ceiling contact every fixed
// tick. A probe that fails keeps its previous value rather than
// assuming "no contact"; nothing is retried within the tick.
func (c *Controller) updateContacts(now float64) {
	c.updateGround(now)
	c.updateWalls()
	c.updateCeiling()
}

// updateGround runs the ground overlap band and, on a falling-or-level
// landing, restores the jump counters, refreshes the grounded-memory
// timestamp and clears a stale jumping flag once vertical speed is
// near zero.
func (c *Controller) updateGround(now float64) {
	size := Vec{X: c.cfg.BodyWidth * groundBandWidthFactor, Y: c.cfg.GroundProbeHeight}
	overlap, err := c.prober.OverlapRegion(c.anchors.Ground(), size, c.cfg.GroundMask)
	if err != nil {
		return
	}
	c.st.Grounded = overlap

	_, vy := c.body.Velocity()
	if overlap && vy <= 0 {
		c.st.AirJumpsLeft = c.cfg.MaxAirJumps
		c.st.WallJumpsLeft = c.cfg.MaxWallJumps
		c.st.LastGroundedAt = now
		if c.st.Jumping && math.Abs(vy) < landedSpeedEpsilon {
			// Safety reset: an Ascending state must not survive landing.
			c.endAscent()
		}
	}
}

// updateWalls runs the two side overlap boxes, offset from the body
// center by the wall probe offset fixed at construction. Each side
// holds its previous value on probe failure.
func (c *Controller) updateWalls() {
	center := c.anchors.Center()

	left := Vec{X: center.X - c.wallProbeOffset, Y: center.Y}
	if hit, err := c.prober.OverlapRegion(left, c.cfg.WallProbeSize, c.cfg.WallMask); err == nil {
		c.st.OnWallLeft = hit
	}

	right := Vec{X: center.X + c.wallProbeOffset, Y: center.Y}
	if hit, err := c.prober.OverlapRegion(right, c.cfg.WallProbeSize, c.cfg.WallMask); err == nil {
		c.st.OnWallRight = hit
	}

	c.st.OnWall = c.st.OnWallLeft || c.st.OnWallRight
}

// updateCeiling casts the head ray only while a jump is active.
// Ceiling state is irrelevant while grounded and not jumping, so the
// flag simply clears when idle instead of paying for the ray.
func (c *Controller) updateCeiling() {
	if !c.st.Jumping {
		c.st.OnCeiling = false
		return
	}
	_, blocked, err := c.prober.Raycast(c.anchors.Head(), up, c.cfg.CeilingProbeDistance, c.cfg.CeilingMask)
	if err != nil {
		return
	}
	c.st.OnCeiling = blocked
}
