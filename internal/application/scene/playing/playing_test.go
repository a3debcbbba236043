package playing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrimsonSeraph/BoundaryError/internal/application/state"
	"github.com/CrimsonSeraph/BoundaryError/internal/application/system"
	"github.com/CrimsonSeraph/BoundaryError/internal/domain/entity"
	"github.com/CrimsonSeraph/BoundaryError/internal/domain/movement"
	"github.com/CrimsonSeraph/BoundaryError/internal/infrastructure/config"
	"github.com/CrimsonSeraph/BoundaryError/internal/platform/tilegrid"
)

// createTestConfig creates a minimal config for testing
func createTestConfig() *config.GameConfig {
	return &config.GameConfig{
		Display: config.DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Framerate:    60,
		},
		Movement: config.MovementConfig{
			MoveSpeed:        120,
			JumpImpulse:      260,
			MaxHoldTime:      0.25,
			HoldForce:        600,
			HoldProfile:      "linear",
			WallPushSpeed:    140,
			WallDamping:      0.5,
			WallDampingMode:  "scale",
			WallSlideSpeed:   60,
			MaxAirJumps:      1,
			MaxWallJumps:     2,
			WallJumpCooldown: 0.2,
			CoyoteTime:       0.1,
			Gravity:          900,
			MaxFallSpeed:     300,
			FallMultiplier:   2.5,
			Body:             config.BodyConfig{Width: 12, Height: 14},
			Probes: config.ProbesConfig{
				GroundHeight:    2,
				WallDistance:    2,
				WallWidth:       2,
				WallHeight:      10,
				CeilingDistance: 3,
			},
		},
	}
}

// createTestStage creates a 20x15 stage with a solid floor row and a
// spawn resting on it.
func createTestStage() *entity.Stage {
	stage := entity.NewStage(20, 15, 16)
	for x := 0; x < 20; x++ {
		stage.SetTile(x, 14, entity.Tile{Type: entity.TileWall, Solid: true, NoSwap: true})
	}
	// Floor top is at pixel y=224; the 14px-tall collider rests with
	// its center 7px above it.
	stage.SpawnX = 160
	stage.SpawnY = 216
	return stage
}

func createTestScene(t *testing.T) *Playing {
	t.Helper()
	p, err := New(createTestConfig(), createTestStage(), 1)
	require.NoError(t, err)
	return p
}

// settle runs neutral frames until the controller reports ground
// contact.
func settle(t *testing.T, p *Playing) {
	t.Helper()
	for i := 0; i < 120; i++ {
		require.NoError(t, p.updatePlaying(p.fixedDT, movement.InputSample{}))
		if p.controller.State().Grounded {
			return
		}
	}
	t.Fatal("body never reached the ground")
}

func TestNewValidatesConfig(t *testing.T) {
	t.Run("bad movement tuning", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.Movement.MoveSpeed = 0

		_, err := New(cfg, createTestStage(), 1)
		assert.Error(t, err)
	})

	t.Run("zero framerate", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.Display.Framerate = 0

		_, err := New(cfg, createTestStage(), 1)
		assert.Error(t, err)
	})
}

func TestHorizontalRun(t *testing.T) {
	p := createTestScene(t)
	settle(t, p)

	x0, _ := p.body.Position()
	for i := 0; i < 30; i++ {
		require.NoError(t, p.updatePlaying(p.fixedDT, movement.InputSample{Axis: 1}))
	}
	x1, _ := p.body.Position()

	// Half a second at 120 px/s with room for collision substepping.
	assert.Greater(t, x1, x0+40.0)
}

func TestJumpRisesFromGround(t *testing.T) {
	p := createTestScene(t)
	settle(t, p)

	_, y0 := p.body.Position()
	in := movement.InputSample{JumpPressed: true, JumpHeld: true}
	require.NoError(t, p.updatePlaying(p.fixedDT, in))

	require.Equal(t, movement.PhaseAscending, p.controller.Phase())

	for i := 0; i < 10; i++ {
		require.NoError(t, p.updatePlaying(p.fixedDT, movement.InputSample{JumpHeld: true}))
	}
	_, y1 := p.body.Position()
	assert.Less(t, y1, y0, "jump moves the body up the screen")
}

func TestFallingOutEndsRun(t *testing.T) {
	cfg := createTestConfig()
	stage := entity.NewStage(20, 15, 16) // no floor anywhere
	stage.SpawnX = 160
	stage.SpawnY = 40

	p, err := New(cfg, stage, 1)
	require.NoError(t, err)

	for i := 0; i < 600 && p.state != state.StateFellOut; i++ {
		require.NoError(t, p.updatePlaying(p.fixedDT, movement.InputSample{}))
	}
	assert.Equal(t, state.StateFellOut, p.state)
}

func TestRestartReturnsToSpawn(t *testing.T) {
	p := createTestScene(t)
	settle(t, p)

	for i := 0; i < 60; i++ {
		require.NoError(t, p.updatePlaying(p.fixedDT, movement.InputSample{Axis: -1}))
	}
	x, _ := p.body.Position()
	require.NotEqual(t, float64(p.stage.SpawnX), x)

	require.NoError(t, p.restart())
	x, y := p.body.Position()
	assert.Equal(t, float64(p.stage.SpawnX), x)
	assert.Equal(t, float64(p.stage.SpawnY), y)
	assert.Equal(t, state.StatePlaying, p.state)
}

func TestTileSwapRunsWhenEnabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.TileSwap = config.TileSwapConfig{
		Enabled:      true,
		Interval:     0.05,
		Chance:       1.0,
		RestoreAfter: 10,
		MaxActive:    8,
		Area:         config.AreaRect{MinX: 0, MinY: 14, MaxX: 19, MaxY: 14},
		Replace:      map[string]string{"wall": "decorAlt"},
	}

	stage := createTestStage()
	for x := 0; x < 20; x++ {
		tile := stage.GetTile(x, 14)
		tile.NoSwap = false
		stage.SetTile(x, 14, tile)
	}

	p, err := New(cfg, stage, 7)
	require.NoError(t, err)
	require.NotNil(t, p.tileSwap)

	for i := 0; i < 120; i++ {
		require.NoError(t, p.updatePlaying(p.fixedDT, movement.InputSample{}))
	}
	assert.NotEmpty(t, p.tileSwap.ActiveSwaps())
}

func TestApplyTuningKeepsBodyInPlace(t *testing.T) {
	p := createTestScene(t)
	settle(t, p)

	for i := 0; i < 30; i++ {
		require.NoError(t, p.updatePlaying(p.fixedDT, movement.InputSample{Axis: 1}))
	}
	x0, y0 := p.body.Position()

	retuned := createTestConfig()
	retuned.Movement.MoveSpeed = 200
	require.NoError(t, p.applyTuning(retuned))

	x1, y1 := p.body.Position()
	assert.Equal(t, x0, x1)
	assert.Equal(t, y0, y1)
	assert.Equal(t, 200.0, p.controller.Config().MoveSpeed)
}

func TestApplyTuningRejectsBadConfig(t *testing.T) {
	t.Run("bad movement section", func(t *testing.T) {
		p := createTestScene(t)

		bad := createTestConfig()
		bad.Movement.JumpImpulse = -1
		assert.Error(t, p.applyTuning(bad))

		// The running world keeps the previous tuning.
		assert.Equal(t, 260.0, p.controller.Config().JumpImpulse)
	})

	t.Run("bad tile-swap section leaves the world untouched", func(t *testing.T) {
		p := createTestScene(t)
		settle(t, p)

		for i := 0; i < 30; i++ {
			require.NoError(t, p.updatePlaying(p.fixedDT, movement.InputSample{Axis: 1}))
		}
		x0, y0 := p.body.Position()
		controller := p.controller

		// Valid movement tuning with a swapper that fails validation:
		// nothing from the reload may apply.
		bad := createTestConfig()
		bad.Movement.MoveSpeed = 200
		bad.TileSwap = config.TileSwapConfig{Enabled: true, Interval: 0}
		assert.Error(t, p.applyTuning(bad))

		assert.Same(t, controller, p.controller)
		assert.Equal(t, 120.0, p.controller.Config().MoveSpeed)
		x1, y1 := p.body.Position()
		assert.Equal(t, x0, x1)
		assert.Equal(t, y0, y1)
		assert.Nil(t, p.tileSwap)
	})
}

func TestToMovementConfig(t *testing.T) {
	mc := ToMovementConfig(createTestConfig().Movement)

	assert.Equal(t, 120.0, mc.MoveSpeed)
	assert.Equal(t, movement.HoldLinearDecay, mc.HoldProfile)
	assert.Equal(t, movement.WallDampingScale, mc.WallDampingMode)
	assert.Equal(t, 12.0, mc.BodyWidth)
	assert.Equal(t, movement.Vec{X: 2, Y: 10}, mc.WallProbeSize)
	assert.Equal(t, tilegrid.LayerSolid, mc.GroundMask)
	assert.Empty(t, mc.Validate())

	wire := createTestConfig().Movement
	wire.HoldProfile = "constant"
	wire.WallDampingMode = "slide"
	mc = ToMovementConfig(wire)
	assert.Equal(t, movement.HoldConstant, mc.HoldProfile)
	assert.Equal(t, movement.WallDampingSlide, mc.WallDampingMode)
}

func TestToTileSwapConfig(t *testing.T) {
	sc := ToTileSwapConfig(config.TileSwapConfig{
		Interval:     1.5,
		Chance:       0.4,
		RestoreAfter: 5,
		MaxActive:    8,
		Area:         config.AreaRect{MinX: 1, MinY: 2, MaxX: 18, MaxY: 13},
		Replace:      map[string]string{"decor": "decorAlt"},
		ExcludeTypes: []string{"wall"},
	})

	assert.Equal(t, 1.5, sc.Interval)
	assert.Equal(t, system.TileArea{MinX: 1, MinY: 2, MaxX: 18, MaxY: 13}, sc.Area)
	assert.Equal(t, map[entity.TileType]entity.TileType{entity.TileDecor: entity.TileDecorAlt}, sc.Replace)
	assert.Equal(t, []entity.TileType{entity.TileWall}, sc.ExcludeTypes)
	assert.Empty(t, sc.Validate())
}
