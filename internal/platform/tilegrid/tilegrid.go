// Package tilegrid backs the movement controller's collaborator
// contracts with the stage tile grid: overlap and ray queries read
// solid tiles directly and the kinematic body sweeps against them in
// pixel substeps.
//
// The grid lives in screen space (+Y down, pixels); the movement core
// speaks +Y up. Every adapter in this package flips the Y axis at the
// boundary so neither side needs to know about the other's convention.
package tilegrid

import (
	"errors"

	"github.com/CrimsonSeraph/BoundaryError/internal/domain/entity"
	"github.com/CrimsonSeraph/BoundaryError/internal/domain/movement"
)

// LayerSolid is the single collision layer a tile grid offers: every
// solid tile belongs to it. Ground, wall and ceiling masks all resolve
// to this layer.
const LayerSolid movement.LayerMask = 1

// rayStep is the sampling step for raycasts, in pixels. A quarter tile
// cannot skip over a 16px tile.
const rayStep = 4.0

// Prober answers movement probes against a stage's solid tiles.
type Prober struct {
	stage *entity.Stage
}

// NewProber returns a prober for the given stage.
func NewProber(stage *entity.Stage) (*Prober, error) {
	if stage == nil {
		return nil, errors.New("tilegrid: nil stage")
	}
	return &Prober{stage: stage}, nil
}

// OverlapRegion reports whether any solid tile overlaps the box. The
// center arrives in core coordinates (+Y up).
func (p *Prober) OverlapRegion(center, size movement.Vec, mask movement.LayerMask) (bool, error) {
	if mask&LayerSolid == 0 {
		return false, nil
	}

	x := int(center.X - size.X/2)
	y := int(-center.Y - size.Y/2)
	w := int(size.X)
	h := int(size.Y)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return p.stage.IsSolidRect(x, y, w, h), nil
}

// Raycast samples along the ray at fixed steps until it leaves the
// range or hits a solid tile. The step never exceeds the range and the
// endpoint is always sampled, so rays shorter than rayStep still probe
// their full length.
func (p *Prober) Raycast(origin, dir movement.Vec, maxDist float64, mask movement.LayerMask) (movement.Hit, bool, error) {
	if mask&LayerSolid == 0 || maxDist <= 0 {
		return movement.Hit{}, false, nil
	}

	step := rayStep
	if maxDist < step {
		step = maxDist
	}
	for d := 0.0; ; d += step {
		if d > maxDist {
			d = maxDist
		}
		px := origin.X + dir.X*d
		py := -(origin.Y + dir.Y*d)
		if p.stage.IsSolidAt(int(px), int(py)) {
			return movement.Hit{
				Point:    movement.Vec{X: px, Y: -py},
				Normal:   movement.Vec{X: -dir.X, Y: -dir.Y},
				Distance: d,
			}, true, nil
		}
		if d >= maxDist {
			return movement.Hit{}, false, nil
		}
	}
}

// BodyConfig tunes the kinematic body's own integration.
type BodyConfig struct {
	// Width and Height are the collider extents in pixels.
	Width, Height float64

	// Gravity is the downward acceleration in pixels per second
	// squared (positive).
	Gravity float64

	// MaxFallSpeed clamps downward speed in pixels per second.
	MaxFallSpeed float64
}

// Body is a kinematic body swept against the stage grid. Position is
// the collider center in screen space. It implements movement.Body
// with core (+Y up) velocities.
type Body struct {
	stage *entity.Stage
	cfg   BodyConfig

	// Screen-space center and velocity (+Y down).
	x, y   float64
	vx, vy float64

	// Accumulated force for the current step, screen space.
	fx, fy float64

	onGround  bool
	onCeiling bool
}

// NewBody places a body with its center at the given screen position.
func NewBody(stage *entity.Stage, x, y float64, cfg BodyConfig) (*Body, error) {
	if stage == nil {
		return nil, errors.New("tilegrid: nil stage")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("tilegrid: body extents must be positive")
	}
	return &Body{stage: stage, cfg: cfg, x: x, y: y}, nil
}

// Velocity implements movement.Body.
func (b *Body) Velocity() (float64, float64) {
	return b.vx, -b.vy
}

// SetVelocity implements movement.Body.
func (b *Body) SetVelocity(vx, vy float64) {
	b.vx = vx
	b.vy = -vy
}

// ApplyForce implements movement.Body. Forces accumulate until the
// next Integrate call consumes them.
func (b *Body) ApplyForce(fx, fy float64) {
	b.fx += fx
	b.fy += -fy
}

// Position returns the collider center in screen space.
func (b *Body) Position() (float64, float64) {
	return b.x, b.y
}

// SetPosition teleports the collider center.
func (b *Body) SetPosition(x, y float64) {
	b.x = x
	b.y = y
}

// OnGround reports whether the last Integrate ended resting on a tile.
func (b *Body) OnGround() bool { return b.onGround }

// Integrate advances the body one fixed step: consumes accumulated
// forces, applies gravity, clamps fall speed and sweeps each axis in
// pixel substeps against the solid tiles.
func (b *Body) Integrate(dt float64) {
	b.vx += b.fx * dt
	b.vy += b.fy * dt
	b.fx, b.fy = 0, 0

	b.vy += b.cfg.Gravity * dt
	if b.vy > b.cfg.MaxFallSpeed {
		b.vy = b.cfg.MaxFallSpeed
	}

	b.onGround = false
	b.onCeiling = false
	b.sweepX(b.vx * dt)
	b.sweepY(b.vy * dt)
}

func (b *Body) sweepX(dx float64) {
	step := 1.0
	if dx < 0 {
		step = -1.0
	}
	for remaining := dx; remaining != 0; {
		move := step
		if abs(remaining) < 1 {
			move = remaining
		}
		if b.collidesAt(b.x+move, b.y) {
			b.vx = 0
			return
		}
		b.x += move
		remaining -= move
		if (step > 0) == (remaining <= 0) {
			return
		}
	}
}

func (b *Body) sweepY(dy float64) {
	step := 1.0
	if dy < 0 {
		step = -1.0
	}
	for remaining := dy; remaining != 0; {
		move := step
		if abs(remaining) < 1 {
			move = remaining
		}
		if b.collidesAt(b.x, b.y+move) {
			if dy > 0 {
				b.onGround = true
			} else {
				b.onCeiling = true
			}
			b.vy = 0
			return
		}
		b.y += move
		remaining -= move
		if (step > 0) == (remaining <= 0) {
			return
		}
	}
}

func (b *Body) collidesAt(cx, cy float64) bool {
	x := int(cx - b.cfg.Width/2)
	y := int(cy - b.cfg.Height/2)
	return b.stage.IsSolidRect(x, y, int(b.cfg.Width), int(b.cfg.Height))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Anchors derives the movement core's probe anchors from a body. All
// returned positions are core coordinates (+Y up).
type Anchors struct {
	body *Body
}

// NewAnchors returns anchors tracking the given body.
func NewAnchors(body *Body) (*Anchors, error) {
	if body == nil {
		return nil, errors.New("tilegrid: nil body")
	}
	return &Anchors{body: body}, nil
}

// Center implements movement.Anchors.
func (a *Anchors) Center() movement.Vec {
	return movement.Vec{X: a.body.x, Y: -a.body.y}
}

// Ground implements movement.Anchors: the bottom edge of the collider.
func (a *Anchors) Ground() movement.Vec {
	return movement.Vec{X: a.body.x, Y: -(a.body.y + a.body.cfg.Height/2 + 1)}
}

// Head implements movement.Anchors: the top edge of the collider.
func (a *Anchors) Head() movement.Vec {
	return movement.Vec{X: a.body.x, Y: -(a.body.y - a.body.cfg.Height/2 - 1)}
}
