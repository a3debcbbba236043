package movement

// Vec is a 2D point or extent in world units.
// The movement core uses a +Y-up convention: upward velocity is positive
// and falling means vy < 0. Platform adapters with screen-space (+Y down)
// coordinates convert at the boundary.
type Vec struct {
	X, Y float64
}

// LayerMask selects which collision layers a probe query considers.
// The core treats masks as opaque configuration.
type LayerMask uint32

// Hit describes a raycast intersection.
type Hit struct {
	Point    Vec
	Normal   Vec
	Distance float64
}

// Body owns the character's velocity. The controller writes velocity
// directly for movement and jump impulses and accumulates continuing
// forces for the jump hold.
type Body interface {
	// Velocity returns the current velocity in world units per second.
	Velocity() (vx, vy float64)

	// SetVelocity overwrites the current velocity.
	SetVelocity(vx, vy float64)

	// ApplyForce accumulates a force for the current fixed step.
	// Implementations integrate accumulated force over the step's delta.
	ApplyForce(fx, fy float64)
}

// Prober answers geometric contact queries against configured collision
// layers. A failed query returns a non-nil error; the controller then
// holds the previous contact state for that probe instead of assuming
// a result.
type Prober interface {
	// OverlapRegion reports whether any collider on the masked layers
	// overlaps the axis-aligned box of the given size centered at center.
	OverlapRegion(center, size Vec, mask LayerMask) (bool, error)

	// Raycast casts a segment from origin along dir (unit vector) up to
	// maxDist. ok is false when nothing on the masked layers was hit.
	Raycast(origin, dir Vec, maxDist float64, mask LayerMask) (hit Hit, ok bool, err error)
}

// Anchors exposes the externally maintained probe anchor positions in
// world space. The two wall-probe anchors are not part of this contract:
// the controller derives them from Center using a horizontal offset it
// computes once at construction.
type Anchors interface {
	// Center is the body center.
	Center() Vec

	// Ground is the center of the ground overlap band.
	Ground() Vec

	// Head is the origin of the upward ceiling ray.
	Head() Vec
}

// Clock provides monotonic simulation time. All controller timestamps
// (last grounded, last wall jump) are compared against Now; there is no
// wall-clock dependency.
type Clock interface {
	// Now returns monotonic time in seconds since an arbitrary origin.
	Now() float64

	// FixedDelta returns the fixed physics step in seconds.
	FixedDelta() float64

	// VariableDelta returns the last frame's delta in seconds.
	VariableDelta() float64
}

// InputSample is one variable-rate sample of the already-normalized
// player input. Producing it (key bindings, gamepad axes) is the
// platform layer's job.
type InputSample struct {
	// Axis is the horizontal input in [-1, 1]. Values outside the range
	// are clamped.
	Axis float64

	// JumpPressed is the press edge: true on the sample where the jump
	// button went down.
	JumpPressed bool

	// JumpReleased is the release edge.
	JumpReleased bool

	// JumpHeld is the level state of the jump button.
	JumpHeld bool
}
