package movement

import "fmt"

// HoldProfile selects how the continuing jump-hold contribution decays
// over the hold window.
type HoldProfile int

const (
	// HoldLinearDecay scales the hold force by the fraction of hold time
	// remaining, so the boost weakens as the hold ages.
	HoldLinearDecay HoldProfile = iota

	// HoldConstant applies the full hold force every step until the hold
	// window expires or the button is released.
	HoldConstant
)

// WallDampingMode selects what happens to velocity while airborne input
// pushes into a contacted wall.
type WallDampingMode int

const (
	// WallDampingScale multiplies horizontal velocity by the damping
	// factor each step.
	WallDampingScale WallDampingMode = iota

	// WallDampingSlide zeroes horizontal velocity and bleeds vertical
	// velocity downward at WallSlideSpeed, giving a controlled slide.
	WallDampingSlide
)

// Config is the immutable tuning for one movement controller.
// All durations are seconds, all speeds world units per second.
type Config struct {
	// MoveSpeed is the horizontal speed at full axis deflection.
	MoveSpeed float64

	// JumpImpulse is the vertical velocity set on any jump start.
	JumpImpulse float64

	// MaxHoldTime is the longest a jump hold can boost the ascent.
	MaxHoldTime float64

	// HoldForce is the upward force applied while holding, shaped by
	// HoldProfile.
	HoldForce   float64
	HoldProfile HoldProfile

	// WallPushSpeed is the horizontal kick applied on a wall jump,
	// directed away from the contacted wall.
	WallPushSpeed float64

	// WallDamping in [0,1] is the horizontal scale factor used by
	// WallDampingScale.
	WallDamping     float64
	WallDampingMode WallDampingMode

	// WallSlideSpeed is the downward acceleration used by
	// WallDampingSlide, in units per second squared.
	WallSlideSpeed float64

	MaxAirJumps  int
	MaxWallJumps int

	// WallJumpCooldown is the minimum time between wall jumps.
	WallJumpCooldown float64

	// CoyoteTime is the grounded-memory window: ground jumps stay legal
	// this long after leaving the ground.
	CoyoteTime float64

	// Gravity is the positive magnitude of gravity. The controller only
	// uses it for the extra fall acceleration; base gravity is the
	// body's concern.
	Gravity float64

	// FallMultiplier >= 1 scales descent. 1 disables the asymmetry.
	FallMultiplier float64

	// BodyWidth is the collider width, used to derive the ground band
	// width and the wall probe offsets.
	BodyWidth float64

	// GroundProbeHeight is the thin vertical extent of the ground band.
	GroundProbeHeight float64

	// WallProbeDistance is how far beyond the body's side each wall
	// probe reaches; the probe center sits at half this past the edge.
	WallProbeDistance float64

	// WallProbeSize is the extent of each wall overlap box.
	WallProbeSize Vec

	// CeilingProbeDistance is the length of the upward head ray.
	CeilingProbeDistance float64

	GroundMask  LayerMask
	WallMask    LayerMask
	CeilingMask LayerMask
}

// Validate returns every configuration violation found, or nil when the
// config is usable. The controller refuses construction on any violation.
func (c Config) Validate() []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.MoveSpeed <= 0 {
		fail("move speed must be positive, got %v", c.MoveSpeed)
	}
	if c.JumpImpulse <= 0 {
		fail("jump impulse must be positive, got %v", c.JumpImpulse)
	}
	if c.MaxHoldTime <= 0 {
		fail("max hold time must be positive, got %v", c.MaxHoldTime)
	}
	if c.HoldForce < 0 {
		fail("hold force must not be negative, got %v", c.HoldForce)
	}
	if c.WallPushSpeed <= 0 {
		fail("wall push speed must be positive, got %v", c.WallPushSpeed)
	}
	if c.WallDamping < 0 || c.WallDamping > 1 {
		fail("wall damping must be in [0,1], got %v", c.WallDamping)
	}
	if c.WallSlideSpeed < 0 {
		fail("wall slide speed must not be negative, got %v", c.WallSlideSpeed)
	}
	if c.MaxAirJumps < 0 {
		fail("max air jumps must not be negative, got %d", c.MaxAirJumps)
	}
	if c.MaxWallJumps < 0 {
		fail("max wall jumps must not be negative, got %d", c.MaxWallJumps)
	}
	if c.WallJumpCooldown < 0 {
		fail("wall jump cooldown must not be negative, got %v", c.WallJumpCooldown)
	}
	if c.CoyoteTime < 0 {
		fail("coyote time must not be negative, got %v", c.CoyoteTime)
	}
	if c.Gravity <= 0 {
		fail("gravity must be positive, got %v", c.Gravity)
	}
	if c.FallMultiplier < 1 {
		fail("fall multiplier must be at least 1, got %v", c.FallMultiplier)
	}
	if c.BodyWidth <= 0 {
		fail("body width must be positive, got %v", c.BodyWidth)
	}
	if c.GroundProbeHeight <= 0 {
		fail("ground probe height must be positive, got %v", c.GroundProbeHeight)
	}
	if c.WallProbeDistance <= 0 {
		fail("wall probe distance must be positive, got %v", c.WallProbeDistance)
	}
	if c.WallProbeSize.X <= 0 || c.WallProbeSize.Y <= 0 {
		fail("wall probe size must be positive, got %v", c.WallProbeSize)
	}
	if c.CeilingProbeDistance <= 0 {
		fail("ceiling probe distance must be positive, got %v", c.CeilingProbeDistance)
	}

	return errs
}
