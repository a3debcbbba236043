package chipmunk

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrimsonSeraph/BoundaryError/internal/domain/movement"
)

const (
	testLayerGround movement.LayerMask = 1 << 0
	testLayerWall   movement.LayerMask = 1 << 1
)

// createTestSpace builds a space with a ground slab on the ground
// layer and a wall slab on the wall layer.
func createTestSpace(t *testing.T) *cp.Space {
	t.Helper()
	space := cp.NewSpace()

	_, err := AddStaticBox(space, movement.Vec{X: 0, Y: -1}, movement.Vec{X: 20, Y: 2}, testLayerGround)
	require.NoError(t, err)
	_, err = AddStaticBox(space, movement.Vec{X: 5, Y: 5}, movement.Vec{X: 2, Y: 10}, testLayerWall)
	require.NoError(t, err)
	return space
}

func TestProberOverlapRespectsLayers(t *testing.T) {
	prober, err := NewProber(createTestSpace(t))
	require.NoError(t, err)

	t.Run("ground layer finds ground slab", func(t *testing.T) {
		hit, err := prober.OverlapRegion(movement.Vec{X: 0, Y: -0.5}, movement.Vec{X: 1, Y: 1}, testLayerGround)
		require.NoError(t, err)
		assert.True(t, hit)
	})

	t.Run("wall layer ignores ground slab", func(t *testing.T) {
		hit, err := prober.OverlapRegion(movement.Vec{X: 0, Y: -0.5}, movement.Vec{X: 1, Y: 1}, testLayerWall)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("empty region", func(t *testing.T) {
		hit, err := prober.OverlapRegion(movement.Vec{X: -5, Y: 5}, movement.Vec{X: 1, Y: 1}, testLayerGround|testLayerWall)
		require.NoError(t, err)
		assert.False(t, hit)
	})
}

func TestProberRaycast(t *testing.T) {
	prober, err := NewProber(createTestSpace(t))
	require.NoError(t, err)

	t.Run("downward ray hits ground", func(t *testing.T) {
		hit, ok, err := prober.Raycast(movement.Vec{X: 0, Y: 2}, movement.Vec{X: 0, Y: -1}, 5, testLayerGround)
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, 2.0, hit.Distance, 1e-6)
		assert.InDelta(t, 1.0, hit.Normal.Y, 1e-6)
	})

	t.Run("ray toward wall on wrong layer misses", func(t *testing.T) {
		_, ok, err := prober.Raycast(movement.Vec{X: 0, Y: 5}, movement.Vec{X: 1, Y: 0}, 10, testLayerGround)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero range misses", func(t *testing.T) {
		_, ok, err := prober.Raycast(movement.Vec{X: 0, Y: 2}, movement.Vec{X: 0, Y: -1}, 0, testLayerGround)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBodyAdapter(t *testing.T) {
	space := cp.NewSpace()
	raw := space.AddBody(cp.NewBody(1, cp.INFINITY))
	raw.SetPosition(cp.Vector{X: 0, Y: 10})

	body, err := NewBody(raw)
	require.NoError(t, err)

	body.SetVelocity(3, -4)
	vx, vy := body.Velocity()
	assert.Equal(t, 3.0, vx)
	assert.Equal(t, -4.0, vy)

	// A constant upward force for one second of steps raises vy by
	// force/mass.
	body.SetVelocity(0, 0)
	for i := 0; i < 10; i++ {
		body.ApplyForce(0, 5)
		space.Step(0.1)
	}
	_, vy = body.Velocity()
	assert.InDelta(t, 5.0, vy, 1e-6)
}

func TestAnchors(t *testing.T) {
	space := cp.NewSpace()
	raw := space.AddBody(cp.NewBody(1, cp.INFINITY))
	raw.SetPosition(cp.Vector{X: 2, Y: 8})

	anchors, err := NewAnchors(raw, 1.5)
	require.NoError(t, err)

	assert.Equal(t, movement.Vec{X: 2, Y: 8}, anchors.Center())
	assert.Equal(t, movement.Vec{X: 2, Y: 6.5}, anchors.Ground())
	assert.Equal(t, movement.Vec{X: 2, Y: 9.5}, anchors.Head())
}

func TestConstructorValidation(t *testing.T) {
	_, err := NewBody(nil)
	assert.Error(t, err)
	_, err = NewProber(nil)
	assert.Error(t, err)
	_, err = NewAnchors(nil, 1)
	assert.Error(t, err)
	_, err = NewAnchors(cp.NewBody(1, 1), 0)
	assert.Error(t, err)
	_, err = AddStaticBox(nil, movement.Vec{}, movement.Vec{}, 1)
	assert.Error(t, err)
}
