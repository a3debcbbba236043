// Package chipmunk backs the movement controller's collaborator
// contracts with a chipmunk (cp) physics space. Unlike the tile grid
// backend the space already works in +Y-up world units, so no axis
// conversion is needed.
package chipmunk

import (
	"errors"

	"github.com/jakecoffman/cp"

	"github.com/CrimsonSeraph/BoundaryError/internal/domain/movement"
)

// Body adapts a dynamic cp.Body to movement.Body.
type Body struct {
	body *cp.Body
}

// NewBody wraps an existing dynamic body.
func NewBody(body *cp.Body) (*Body, error) {
	if body == nil {
		return nil, errors.New("chipmunk: nil body")
	}
	return &Body{body: body}, nil
}

// Raw returns the underlying cp body.
func (b *Body) Raw() *cp.Body { return b.body }

// Velocity implements movement.Body.
func (b *Body) Velocity() (float64, float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

// SetVelocity implements movement.Body.
func (b *Body) SetVelocity(vx, vy float64) {
	b.body.SetVelocity(vx, vy)
}

// ApplyForce implements movement.Body.
func (b *Body) ApplyForce(fx, fy float64) {
	b.body.ApplyForceAtWorldPoint(cp.Vector{X: fx, Y: fy}, b.body.Position())
}

// Prober answers movement probes with cp space queries.
type Prober struct {
	space *cp.Space
}

// NewProber returns a prober over the given space.
func NewProber(space *cp.Space) (*Prober, error) {
	if space == nil {
		return nil, errors.New("chipmunk: nil space")
	}
	return &Prober{space: space}, nil
}

func maskFilter(mask movement.LayerMask) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(mask),
	}
}

// OverlapRegion implements movement.Prober with a bounding-box query.
func (p *Prober) OverlapRegion(center, size movement.Vec, mask movement.LayerMask) (bool, error) {
	bb := cp.BB{
		L: center.X - size.X/2,
		B: center.Y - size.Y/2,
		R: center.X + size.X/2,
		T: center.Y + size.Y/2,
	}

	found := false
	p.space.BBQuery(bb, maskFilter(mask), func(shape *cp.Shape, _ interface{}) {
		found = true
	}, nil)
	return found, nil
}

// Raycast implements movement.Prober with a segment query.
func (p *Prober) Raycast(origin, dir movement.Vec, maxDist float64, mask movement.LayerMask) (movement.Hit, bool, error) {
	if maxDist <= 0 {
		return movement.Hit{}, false, nil
	}

	start := cp.Vector{X: origin.X, Y: origin.Y}
	end := cp.Vector{X: origin.X + dir.X*maxDist, Y: origin.Y + dir.Y*maxDist}

	info := p.space.SegmentQueryFirst(start, end, 0, maskFilter(mask))
	if info.Shape == nil {
		return movement.Hit{}, false, nil
	}
	return movement.Hit{
		Point:    movement.Vec{X: info.Point.X, Y: info.Point.Y},
		Normal:   movement.Vec{X: info.Normal.X, Y: info.Normal.Y},
		Distance: info.Alpha * maxDist,
	}, true, nil
}

// Anchors derives probe anchors from a cp body's position and a fixed
// collider half-height.
type Anchors struct {
	body       *cp.Body
	halfHeight float64
}

// NewAnchors returns anchors tracking the body center offset by the
// collider half-height.
func NewAnchors(body *cp.Body, halfHeight float64) (*Anchors, error) {
	if body == nil {
		return nil, errors.New("chipmunk: nil body")
	}
	if halfHeight <= 0 {
		return nil, errors.New("chipmunk: half height must be positive")
	}
	return &Anchors{body: body, halfHeight: halfHeight}, nil
}

// Center implements movement.Anchors.
func (a *Anchors) Center() movement.Vec {
	pos := a.body.Position()
	return movement.Vec{X: pos.X, Y: pos.Y}
}

// Ground implements movement.Anchors.
func (a *Anchors) Ground() movement.Vec {
	pos := a.body.Position()
	return movement.Vec{X: pos.X, Y: pos.Y - a.halfHeight}
}

// Head implements movement.Anchors.
func (a *Anchors) Head() movement.Vec {
	pos := a.body.Position()
	return movement.Vec{X: pos.X, Y: pos.Y + a.halfHeight}
}

// AddStaticBox adds an axis-aligned static box to the space on the
// given collision layer. Returns the created shape.
func AddStaticBox(space *cp.Space, center movement.Vec, size movement.Vec, layer movement.LayerMask) (*cp.Shape, error) {
	if space == nil {
		return nil, errors.New("chipmunk: nil space")
	}
	bb := cp.BB{
		L: center.X - size.X/2,
		B: center.Y - size.Y/2,
		R: center.X + size.X/2,
		T: center.Y + size.Y/2,
	}
	shape := space.AddShape(cp.NewBox2(space.StaticBody, bb, 0))
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(layer),
		Mask:       cp.ALL_CATEGORIES,
	})
	return shape, nil
}
