// Package movement implements the deterministic, fixed-timestep 2D
// character movement and jump controller.
//
// The controller consumes normalized input samples and geometric contact
// probes and produces exactly one velocity resolution per fixed physics
// tick: ground movement, coyote-time ground jumps, limited air jumps,
// wall jumps with a directional kick and cooldown, a variable-height
// jump hold, a head-collision cutoff, and an asymmetric fall multiplier.
//
// Two cadences drive it: SampleInput at the variable frame rate (edge
// detection, eligibility, hold countdown) and Tick at the fixed physics
// rate (contacts, velocity writes). A single button press yields at most
// one jump no matter how often it is sampled before consumption.
package movement

import (
	"errors"
	"fmt"
	"math"
)

// Collaborator errors. The controller refuses to run without its
// collaborators rather than act on zero values.
var (
	ErrNilBody    = errors.New("movement: nil body")
	ErrNilProber  = errors.New("movement: nil prober")
	ErrNilAnchors = errors.New("movement: nil anchors")
	ErrNilClock   = errors.New("movement: nil clock")
)

// landedSpeedEpsilon is the vertical speed under which a landing also
// force-clears a stale jumping flag.
const landedSpeedEpsilon = 1e-2

// Controller turns input samples and contact probes into velocity
// writes on a single Body. One controller drives exactly one body;
// independent instances do not share state.
type Controller struct {
	cfg     Config
	body    Body
	prober  Prober
	anchors Anchors
	clock   Clock

	st   State
	elig Eligibility

	// jumpHeld mirrors the last sampled level state of the jump button.
	jumpHeld bool

	// wallProbeOffset is the horizontal distance from body center to
	// each wall probe center, fixed at construction.
	wallProbeOffset float64
}

// New validates the configuration, checks the collaborators and returns
// a ready controller. Configuration violations are joined into a single
// error; the controller never runs with an invalid config.
func New(cfg Config, body Body, prober Prober, anchors Anchors, clock Clock) (*Controller, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("movement: invalid config: %w", errors.Join(errs...))
	}
	if body == nil {
		return nil, ErrNilBody
	}
	if prober == nil {
		return nil, ErrNilProber
	}
	if anchors == nil {
		return nil, ErrNilAnchors
	}
	if clock == nil {
		return nil, ErrNilClock
	}

	return &Controller{
		cfg:             cfg,
		body:            body,
		prober:          prober,
		anchors:         anchors,
		clock:           clock,
		st:              newState(cfg),
		wallProbeOffset: cfg.BodyWidth/2 + cfg.WallProbeDistance/2,
	}, nil
}

// Config returns the controller's immutable configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a copy of the current movement state.
func (c *Controller) State() State {
	return c.st
}

// SetState replaces the movement state. Intended for tests that need to
// assert behavior from a specific starting state.
func (c *Controller) SetState(st State) {
	c.st = st
}

// Eligibility returns the jump eligibility derived on the last input
// sample.
func (c *Controller) Eligibility() Eligibility {
	return c.elig
}

// Phase returns the coarse jump phase.
func (c *Controller) Phase() JumpPhase {
	if c.st.Jumping {
		return PhaseAscending
	}
	return PhaseIdle
}

// SampleInput runs the variable-rate cadence: it records the horizontal
// axis, derives jump eligibility, latches a pending jump request on a
// press edge, ends the ascent on release, and counts down the hold
// window while the button stays held. dt is the frame delta in seconds.
func (c *Controller) SampleInput(in InputSample, dt float64) {
	c.st.Axis = clampAxis(in.Axis)
	c.jumpHeld = in.JumpHeld

	c.elig = c.resolveEligibility(c.clock.Now())

	if in.JumpPressed && c.elig.Any {
		// Idempotent: a second press before consumption changes nothing.
		c.st.JumpRequested = true
	}

	if in.JumpReleased && c.st.Jumping {
		c.endAscent()
		return
	}

	if c.st.Jumping && in.JumpHeld {
		c.st.HoldRemaining -= dt
		if c.st.HoldRemaining <= 0 {
			c.endAscent()
		}
	}
}

// Tick runs the fixed-rate cadence in a fixed order: contact detection,
// horizontal movement with wall damping, jump consumption and hold
// boost, and the fall multiplier as the final velocity write. dt is the
// fixed physics step in seconds.
func (c *Controller) Tick(dt float64) error {
	if c.body == nil || c.prober == nil || c.anchors == nil || c.clock == nil {
		return errors.New("movement: controller is missing collaborators")
	}

	now := c.clock.Now()
	c.updateContacts(now)
	c.applyHorizontal(dt)
	c.applyJump(now)
	c.applyFallMultiplier(dt)
	return nil
}

// resolveEligibility derives the four jump eligibility flags. Ceiling
// contact gates every jump type: a blocked head can neither start nor
// continue a jump.
func (c *Controller) resolveEligibility(now float64) Eligibility {
	var e Eligibility
	if c.st.OnCeiling {
		return e
	}

	e.GroundJump = c.st.Grounded || now-c.st.LastGroundedAt <= c.cfg.CoyoteTime
	e.AirJump = !e.GroundJump && c.st.AirJumpsLeft > 0
	e.WallJump = !e.GroundJump && c.st.OnWall &&
		now-c.st.LastWallJumpAt > c.cfg.WallJumpCooldown &&
		c.st.WallJumpsLeft > 0
	e.Any = e.GroundJump || e.AirJump || e.WallJump
	return e
}

// applyHorizontal resolves the horizontal velocity every fixed tick
// regardless of jump state. Airborne input pressing into a contacted
// wall triggers the configured damping variant; otherwise horizontal
// velocity is set directly from the axis.
func (c *Controller) applyHorizontal(dt float64) {
	vx, vy := c.body.Velocity()

	intoWall := !c.st.Grounded &&
		((c.st.Axis < 0 && c.st.OnWallLeft) || (c.st.Axis > 0 && c.st.OnWallRight))
	if intoWall {
		switch c.cfg.WallDampingMode {
		case WallDampingSlide:
			c.body.SetVelocity(0, vy-c.cfg.WallSlideSpeed*dt)
		default:
			c.body.SetVelocity(vx*c.cfg.WallDamping, vy)
		}
		return
	}

	c.body.SetVelocity(c.st.Axis*c.cfg.MoveSpeed, vy)
}

// applyJump consumes a pending jump request, applies the head-collision
// cutoff, and contributes the continuing hold boost while ascending.
func (c *Controller) applyJump(now float64) {
	if c.st.JumpRequested {
		c.st.JumpRequested = false
		c.startJump(c.resolveJumpKind(), now)
	}

	if c.st.Jumping && c.st.OnCeiling {
		// Head blocked mid-ascent: the hold may not continue.
		c.endAscent()
	}

	if c.st.Jumping && c.jumpHeld && c.st.HoldRemaining > 0 {
		force := c.cfg.HoldForce
		if c.cfg.HoldProfile == HoldLinearDecay {
			force *= c.st.HoldRemaining / c.cfg.MaxHoldTime
		}
		c.body.ApplyForce(0, force)
	}
}

// resolveJumpKind picks the variant for a consumed request. Priority is
// fixed: wall jump first, then air jump, with ground jump as the
// fallback (a request can only have been latched while eligible, so the
// fallback covers grounded and coyote starts).
func (c *Controller) resolveJumpKind() JumpKind {
	airborne := !c.st.Grounded
	if airborne && c.st.OnWall && c.st.WallJumpsLeft > 0 {
		return JumpWall
	}
	if airborne && !c.st.OnWall && c.st.AirJumpsLeft > 0 {
		return JumpAir
	}
	return JumpGround
}

// startJump executes exactly one jump variant and opens the hold window.
func (c *Controller) startJump(kind JumpKind, now float64) {
	vx, _ := c.body.Velocity()

	switch kind {
	case JumpWall:
		push := c.cfg.WallPushSpeed
		if !c.st.OnWallLeft && c.st.OnWallRight {
			// Away from the right wall means leftward.
			push = -push
		}
		c.body.SetVelocity(push, c.cfg.JumpImpulse)
		c.st.WallJumpsLeft--
		c.st.LastWallJumpAt = now
	case JumpAir:
		c.body.SetVelocity(vx, c.cfg.JumpImpulse)
		c.st.AirJumpsLeft--
	default:
		c.body.SetVelocity(vx, c.cfg.JumpImpulse)
	}

	c.st.Jumping = true
	c.st.HoldRemaining = c.cfg.MaxHoldTime
}

// endAscent closes the jump-hold window and returns the state machine
// to idle. Velocity is left untouched; only the boost stops.
func (c *Controller) endAscent() {
	c.st.Jumping = false
	c.st.HoldRemaining = 0
}

// applyFallMultiplier adds the extra downward acceleration while
// falling. It is the last velocity write of the tick so no other logic
// can overwrite it, and it never runs while vertical velocity is >= 0.
func (c *Controller) applyFallMultiplier(dt float64) {
	vx, vy := c.body.Velocity()
	if vy >= 0 {
		return
	}
	c.body.SetVelocity(vx, vy-c.cfg.Gravity*(c.cfg.FallMultiplier-1)*dt)
}

func clampAxis(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
