package config

import "fmt"

// GameConfig is the root config for game.yaml
type GameConfig struct {
	Display  DisplayConfig  `yaml:"display"`
	Movement MovementConfig `yaml:"movement"`
	TileSwap TileSwapConfig `yaml:"tileSwap"`
	Stage    StageSelection `yaml:"stage"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

// Validate reports display tuning violations. A zero framerate would
// degenerate the fixed step, so it is rejected here rather than at the
// scene.
func (c DisplayConfig) Validate() []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		fail("screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.Framerate <= 0 {
		fail("framerate must be positive, got %d", c.Framerate)
	}
	return errs
}

// MovementConfig is the wire form of the movement controller tuning.
// Values are pixels and seconds; the playing scene converts it to the
// controller's config.
type MovementConfig struct {
	MoveSpeed        float64 `yaml:"moveSpeed"`
	JumpImpulse      float64 `yaml:"jumpImpulse"`
	MaxHoldTime      float64 `yaml:"maxHoldTime"`
	HoldForce        float64 `yaml:"holdForce"`
	HoldProfile      string  `yaml:"holdProfile"` // "linear" or "constant"
	WallPushSpeed    float64 `yaml:"wallPushSpeed"`
	WallDamping      float64 `yaml:"wallDamping"`
	WallDampingMode  string  `yaml:"wallDampingMode"` // "scale" or "slide"
	WallSlideSpeed   float64 `yaml:"wallSlideSpeed"`
	MaxAirJumps      int     `yaml:"maxAirJumps"`
	MaxWallJumps     int     `yaml:"maxWallJumps"`
	WallJumpCooldown float64 `yaml:"wallJumpCooldown"`
	CoyoteTime       float64 `yaml:"coyoteTime"`
	Gravity          float64 `yaml:"gravity"`
	MaxFallSpeed     float64 `yaml:"maxFallSpeed"`
	FallMultiplier   float64 `yaml:"fallMultiplier"`

	Body   BodyConfig   `yaml:"body"`
	Probes ProbesConfig `yaml:"probes"`
}

type BodyConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ProbesConfig struct {
	GroundHeight    float64 `yaml:"groundHeight"`
	WallDistance    float64 `yaml:"wallDistance"`
	WallWidth       float64 `yaml:"wallWidth"`
	WallHeight      float64 `yaml:"wallHeight"`
	CeilingDistance float64 `yaml:"ceilingDistance"`
}

// TileSwapConfig is the wire form of the tile-swap subsystem tuning.
type TileSwapConfig struct {
	Enabled      bool              `yaml:"enabled"`
	Interval     float64           `yaml:"interval"`
	Chance       float64           `yaml:"chance"`
	RestoreAfter float64           `yaml:"restoreAfter"`
	MaxActive    int               `yaml:"maxActive"`
	Area         AreaRect          `yaml:"area"`
	Replace      map[string]string `yaml:"replace"`
	ExcludeTypes []string          `yaml:"excludeTypes"`
}

type AreaRect struct {
	MinX int `yaml:"minX"`
	MinY int `yaml:"minY"`
	MaxX int `yaml:"maxX"`
	MaxY int `yaml:"maxY"`
}

// StageSelection picks between a generated and an authored stage.
type StageSelection struct {
	Mode string         `yaml:"mode"` // "generate" or "load"
	Name string         `yaml:"name"` // stage file name for "load"
	Gen  StageGenConfig `yaml:"gen"`
}

type StageGenConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	TileSize    int     `yaml:"tileSize"`
	Seed        int64   `yaml:"seed"`
	Threshold   float64 `yaml:"threshold"`
	Scale       float64 `yaml:"scale"`
	DecorChance float64 `yaml:"decorChance"`
}

// StageConfig is the root config for stage YAML files: character rows
// for the collision layer plus a legend mapping characters to tiles.
type StageConfig struct {
	ID          string                       `yaml:"id"`
	Name        string                       `yaml:"name"`
	Size        StageSizeConfig              `yaml:"size"`
	PlayerSpawn PositionConfig               `yaml:"playerSpawn"`
	Layers      LayersConfig                 `yaml:"layers"`
	TileMapping map[string]TileMappingConfig `yaml:"tileMapping"`
}

// Validate reports stage config violations. The grid dimensions are
// derived from the pixel size, so a zero tile size is rejected before
// any division happens.
func (c StageConfig) Validate() []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Size.TileSize <= 0 {
		fail("tile size must be positive, got %d", c.Size.TileSize)
	}
	if c.Size.Width <= 0 {
		fail("stage width must be positive, got %d", c.Size.Width)
	}
	if len(c.Layers.Collision) == 0 {
		fail("collision layer is empty")
	}
	return errs
}

type StageSizeConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TileSize int `yaml:"tileSize"`
}

type PositionConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type LayersConfig struct {
	Collision []string `yaml:"collision"`
}

type TileMappingConfig struct {
	Type   string `yaml:"type"`
	Solid  bool   `yaml:"solid"`
	NoSwap bool   `yaml:"noSwap,omitempty"`
}
