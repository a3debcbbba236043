// Package playing provides the main gameplay scene: the movement
// controller driving a kinematic body through the stage, plus the
// random tile swapper.
package playing

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/CrimsonSeraph/BoundaryError/internal/application/scene"
	"github.com/CrimsonSeraph/BoundaryError/internal/application/state"
	"github.com/CrimsonSeraph/BoundaryError/internal/application/system"
	"github.com/CrimsonSeraph/BoundaryError/internal/domain/entity"
	"github.com/CrimsonSeraph/BoundaryError/internal/domain/movement"
	"github.com/CrimsonSeraph/BoundaryError/internal/infrastructure/config"
	"github.com/CrimsonSeraph/BoundaryError/internal/platform/clock"
	"github.com/CrimsonSeraph/BoundaryError/internal/platform/tilegrid"
)

// fellOutMargin is how far below the stage the player may fall, in
// pixels, before the run ends.
const fellOutMargin = 64.0

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorWall     = color.RGBA{80, 80, 100, 255}
	colorDecor    = color.RGBA{70, 120, 90, 255}
	colorDecorAlt = color.RGBA{140, 90, 140, 255}
	colorSwapped  = color.RGBA{230, 190, 80, 90}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
)

// Playing is the main gameplay scene
type Playing struct {
	config *config.GameConfig
	stage  *entity.Stage
	state  state.GameState

	controller *movement.Controller
	body       *tilegrid.Body
	clock      *clock.SimClock
	tileSwap   *system.TileSwapSystem

	screenW  int
	screenH  int
	tileSize int

	fixedDT     float64
	accumulator float64

	seed int64

	// tuning receives reloaded configs from the file watcher; the
	// update loop applies them between frames.
	tuning chan *config.GameConfig
}

// New builds the scene from loaded configuration and a ready stage.
func New(cfg *config.GameConfig, stage *entity.Stage, seed int64) (*Playing, error) {
	if errs := cfg.Display.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("playing: invalid display config: %w", errors.Join(errs...))
	}
	p := &Playing{
		config:   cfg,
		stage:    stage,
		state:    state.StatePlaying,
		screenW:  cfg.Display.ScreenWidth,
		screenH:  cfg.Display.ScreenHeight,
		tileSize: stage.TileSize,
		fixedDT:  1.0 / float64(cfg.Display.Framerate),
		seed:     seed,
		tuning:   make(chan *config.GameConfig, 1),
	}
	if err := p.buildWorld(); err != nil {
		return nil, err
	}
	return p, nil
}

// buildWorld wires the controller, body and swapper; restart reuses it.
func (p *Playing) buildWorld() error {
	mc := ToMovementConfig(p.config.Movement)

	body, err := tilegrid.NewBody(p.stage, float64(p.stage.SpawnX), float64(p.stage.SpawnY), tilegrid.BodyConfig{
		Width:        p.config.Movement.Body.Width,
		Height:       p.config.Movement.Body.Height,
		Gravity:      p.config.Movement.Gravity,
		MaxFallSpeed: p.config.Movement.MaxFallSpeed,
	})
	if err != nil {
		return fmt.Errorf("playing: create body: %w", err)
	}

	prober, err := tilegrid.NewProber(p.stage)
	if err != nil {
		return fmt.Errorf("playing: create prober: %w", err)
	}
	anchors, err := tilegrid.NewAnchors(body)
	if err != nil {
		return fmt.Errorf("playing: create anchors: %w", err)
	}
	clk, err := clock.NewSimClock(p.fixedDT)
	if err != nil {
		return fmt.Errorf("playing: create clock: %w", err)
	}

	controller, err := movement.New(mc, body, prober, anchors, clk)
	if err != nil {
		return fmt.Errorf("playing: create movement controller: %w", err)
	}

	var swapper *system.TileSwapSystem
	if p.config.TileSwap.Enabled {
		swapper, err = system.NewTileSwapSystem(
			ToTileSwapConfig(p.config.TileSwap),
			p.stage,
			rand.New(rand.NewSource(p.seed)),
		)
		if err != nil {
			return fmt.Errorf("playing: create tile swapper: %w", err)
		}
	}

	// Nothing above mutates the scene, so a failed rebuild leaves the
	// running world untouched.
	p.body = body
	p.clock = clk
	p.controller = controller
	p.tileSwap = swapper
	p.accumulator = 0
	return nil
}

// ToMovementConfig converts the wire movement tuning to the
// controller's config. All probes target the stage's solid layer.
func ToMovementConfig(mc config.MovementConfig) movement.Config {
	holdProfile := movement.HoldLinearDecay
	if mc.HoldProfile == "constant" {
		holdProfile = movement.HoldConstant
	}
	dampingMode := movement.WallDampingScale
	if mc.WallDampingMode == "slide" {
		dampingMode = movement.WallDampingSlide
	}

	return movement.Config{
		MoveSpeed:        mc.MoveSpeed,
		JumpImpulse:      mc.JumpImpulse,
		MaxHoldTime:      mc.MaxHoldTime,
		HoldForce:        mc.HoldForce,
		HoldProfile:      holdProfile,
		WallPushSpeed:    mc.WallPushSpeed,
		WallDamping:      mc.WallDamping,
		WallDampingMode:  dampingMode,
		WallSlideSpeed:   mc.WallSlideSpeed,
		MaxAirJumps:      mc.MaxAirJumps,
		MaxWallJumps:     mc.MaxWallJumps,
		WallJumpCooldown: mc.WallJumpCooldown,
		CoyoteTime:       mc.CoyoteTime,
		Gravity:          mc.Gravity,
		FallMultiplier:   mc.FallMultiplier,

		BodyWidth:            mc.Body.Width,
		GroundProbeHeight:    mc.Probes.GroundHeight,
		WallProbeDistance:    mc.Probes.WallDistance,
		WallProbeSize:        movement.Vec{X: mc.Probes.WallWidth, Y: mc.Probes.WallHeight},
		CeilingProbeDistance: mc.Probes.CeilingDistance,

		GroundMask:  tilegrid.LayerSolid,
		WallMask:    tilegrid.LayerSolid,
		CeilingMask: tilegrid.LayerSolid,
	}
}

// ToTileSwapConfig converts the wire tile-swap tuning to the system's
// config.
func ToTileSwapConfig(tc config.TileSwapConfig) system.TileSwapConfig {
	replace := make(map[entity.TileType]entity.TileType, len(tc.Replace))
	for from, to := range tc.Replace {
		replace[system.TileTypeFromName(from)] = system.TileTypeFromName(to)
	}
	exclude := make([]entity.TileType, 0, len(tc.ExcludeTypes))
	for _, name := range tc.ExcludeTypes {
		exclude = append(exclude, system.TileTypeFromName(name))
	}

	return system.TileSwapConfig{
		Interval:     tc.Interval,
		Chance:       tc.Chance,
		RestoreAfter: tc.RestoreAfter,
		MaxActive:    tc.MaxActive,
		Area: system.TileArea{
			MinX: tc.Area.MinX,
			MinY: tc.Area.MinY,
			MaxX: tc.Area.MaxX,
			MaxY: tc.Area.MaxY,
		},
		Replace:      replace,
		ExcludeTypes: exclude,
	}
}

// QueueTuning hands a reloaded config to the scene. Safe to call from
// another goroutine; if a reload is already pending the new one is
// dropped.
func (p *Playing) QueueTuning(cfg *config.GameConfig) {
	select {
	case p.tuning <- cfg:
	default:
	}
}

// applyTuning rebuilds the world with new tuning while keeping the
// body where it is.
func (p *Playing) applyTuning(cfg *config.GameConfig) error {
	x, y := p.body.Position()
	vx, vy := p.body.Velocity()

	if p.tileSwap != nil {
		p.tileSwap.RestoreAll()
	}
	old := p.config
	p.config = cfg
	if err := p.buildWorld(); err != nil {
		p.config = old
		return err
	}

	p.body.SetPosition(x, y)
	p.body.SetVelocity(vx, vy)
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	select {
	case cfg := <-p.tuning:
		// A bad reload must not kill a running game.
		if err := p.applyTuning(cfg); err != nil {
			log.Printf("Rejected config reload: %v", err)
		}
	default:
	}

	switch p.state {
	case state.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePaused
			return nil, nil
		}
		if err := p.updatePlaying(dt, readInput()); err != nil {
			return nil, err
		}
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateFellOut:
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := p.restart(); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil // nil = stay on this scene
}

// updatePlaying samples input at frame rate and advances the
// simulation in fixed steps.
func (p *Playing) updatePlaying(dt float64, in movement.InputSample) error {
	p.clock.SetVariableDelta(dt)
	p.controller.SampleInput(in, dt)

	p.accumulator += dt
	for p.accumulator >= p.fixedDT {
		p.accumulator -= p.fixedDT
		if err := p.controller.Tick(p.fixedDT); err != nil {
			return fmt.Errorf("playing: movement tick: %w", err)
		}
		p.body.Integrate(p.fixedDT)
		if p.tileSwap != nil {
			p.tileSwap.Update(p.fixedDT)
		}
		p.clock.AdvanceFixed()
	}

	_, y := p.body.Position()
	if y > float64(p.stage.Height*p.tileSize)+fellOutMargin {
		p.state = state.StateFellOut
	}
	return nil
}

// readInput maps the keyboard to one input sample. A/D and the arrow
// keys move, Space and W jump.
func readInput() movement.InputSample {
	axis := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		axis -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		axis += 1
	}

	return movement.InputSample{
		Axis: axis,
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyW),
		JumpReleased: inpututil.IsKeyJustReleased(ebiten.KeySpace) ||
			inpututil.IsKeyJustReleased(ebiten.KeyW),
		JumpHeld: ebiten.IsKeyPressed(ebiten.KeySpace) ||
			ebiten.IsKeyPressed(ebiten.KeyW),
	}
}

// restart puts swapped tiles back and rebuilds the world at the spawn.
func (p *Playing) restart() error {
	if p.tileSwap != nil {
		p.tileSwap.RestoreAll()
	}
	if err := p.buildWorld(); err != nil {
		return err
	}
	p.state = state.StatePlaying
	return nil
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camera()

	p.drawTiles(screen, camX, camY)
	p.drawSwapped(screen, camX, camY)
	p.drawPlayer(screen, camX, camY)
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateFellOut:
		p.drawFellOutOverlay(screen)
	}
}

// camera centers on the player and clamps to the stage bounds.
func (p *Playing) camera() (int, int) {
	x, y := p.body.Position()
	camX := int(x) - p.screenW/2
	camY := int(y) - p.screenH/2

	maxCamX := p.stage.Width*p.tileSize - p.screenW
	maxCamY := p.stage.Height*p.tileSize - p.screenH
	if camX > maxCamX {
		camX = maxCamX
	}
	if camY > maxCamY {
		camY = maxCamY
	}
	if camX < 0 {
		camX = 0
	}
	if camY < 0 {
		camY = 0
	}
	return camX, camY
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX, camY int) {
	startTileX := camX / p.tileSize
	startTileY := camY / p.tileSize
	endTileX := (camX+p.screenW)/p.tileSize + 1
	endTileY := (camY+p.screenH)/p.tileSize + 1

	for ty := startTileY; ty <= endTileY && ty < p.stage.Height; ty++ {
		for tx := startTileX; tx <= endTileX && tx < p.stage.Width; tx++ {
			if tx < 0 || ty < 0 {
				continue
			}
			tile := p.stage.GetTile(tx, ty)
			if tile.Type == entity.TileEmpty {
				continue
			}

			x := float64(tx*p.tileSize - camX)
			y := float64(ty*p.tileSize - camY)

			var c color.Color
			switch tile.Type {
			case entity.TileWall:
				c = colorWall
			case entity.TileDecor:
				c = colorDecor
			case entity.TileDecorAlt:
				c = colorDecorAlt
			default:
				continue
			}

			ebitenutil.DrawRect(screen, x, y, float64(p.tileSize), float64(p.tileSize), c)
		}
	}
}

// drawSwapped tints the tiles currently replaced by the swapper.
func (p *Playing) drawSwapped(screen *ebiten.Image, camX, camY int) {
	if p.tileSwap == nil {
		return
	}
	for _, rec := range p.tileSwap.ActiveSwaps() {
		x := float64(rec.TX*p.tileSize - camX)
		y := float64(rec.TY*p.tileSize - camY)
		ebitenutil.DrawRect(screen, x, y, float64(p.tileSize), float64(p.tileSize), colorSwapped)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, camX, camY int) {
	x, y := p.body.Position()
	w := p.config.Movement.Body.Width
	h := p.config.Movement.Body.Height

	ebitenutil.DrawRect(screen, x-w/2-float64(camX), y-h/2-float64(camY), w, h, colorPlayer)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	st := p.controller.State()
	status := fmt.Sprintf("air %d | wall %d | phase %s",
		st.AirJumpsLeft, st.WallJumpsLeft, p.controller.Phase())
	ebitenutil.DebugPrintAt(screen, status, 10, p.screenH-16)

	ebitenutil.DebugPrint(screen, "A/D: Move | W/Space: Jump (hold for height) | ESC: Pause")
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	ebitenutil.DebugPrintAt(screen, "PAUSED\n\nPress ESC to resume", p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawFellOutOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{100, 0, 0, 180}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	ebitenutil.DebugPrintAt(screen, "FELL OUT\n\nPress Z to restart", p.screenW/2-50, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	if p.tileSwap != nil {
		p.tileSwap.RestoreAll()
	}
}
