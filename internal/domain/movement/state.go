package movement

import "math"

// JumpKind is the resolved variant of a consumed jump request.
type JumpKind int

const (
	JumpGround JumpKind = iota
	JumpAir
	JumpWall
)

// String returns the jump kind name.
func (k JumpKind) String() string {
	switch k {
	case JumpGround:
		return "ground"
	case JumpAir:
		return "air"
	case JumpWall:
		return "wall"
	default:
		return "unknown"
	}
}

// JumpPhase is the coarse jump state machine phase.
type JumpPhase int

const (
	// PhaseIdle means no jump is active.
	PhaseIdle JumpPhase = iota

	// PhaseAscending means a jump started and the hold window is open.
	PhaseAscending
)

// String returns the phase name.
func (p JumpPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAscending:
		return "ascending"
	default:
		return "unknown"
	}
}

// State is the controller's mutable per-instance state. It is owned
// exclusively by the controller and mutated only by its tick methods;
// tests may inject a state directly through Controller.SetState.
type State struct {
	// Axis is the last sampled horizontal input in [-1,1].
	Axis float64

	Grounded bool

	// Jumping is true from jump start until release, hold expiry,
	// ceiling cutoff, or a landing reset.
	Jumping bool

	// HoldRemaining is the seconds of jump-hold boost left.
	HoldRemaining float64

	// JumpRequested is the pending, edge-triggered jump request.
	// Repeated presses before consumption have no additional effect.
	JumpRequested bool

	OnWallLeft  bool
	OnWallRight bool
	OnWall      bool
	OnCeiling   bool

	// LastGroundedAt and LastWallJumpAt are Clock.Now timestamps;
	// both start at -Inf meaning "never".
	LastGroundedAt float64
	LastWallJumpAt float64

	AirJumpsLeft  int
	WallJumpsLeft int
}

// newState returns the initial state for a controller: jump counters at
// their configured maxima, timestamps at "never".
func newState(cfg Config) State {
	return State{
		LastGroundedAt: math.Inf(-1),
		LastWallJumpAt: math.Inf(-1),
		AirJumpsLeft:   cfg.MaxAirJumps,
		WallJumpsLeft:  cfg.MaxWallJumps,
	}
}

// Eligibility is the per-input-tick jump eligibility, derived from
// contact state and the clock. It is recomputed on every input sample
// and never persisted across ticks.
type Eligibility struct {
	GroundJump bool
	AirJump    bool
	WallJump   bool

	// Any is the OR of the three.
	Any bool
}
