package system

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/CrimsonSeraph/BoundaryError/internal/domain/entity"
)

// Perlin parameters. Two octaves keep the terrain chunky enough to
// stand on at tile resolution.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 2
)

// StageGenConfig tunes procedural stage generation.
type StageGenConfig struct {
	Width    int // tiles
	Height   int // tiles
	TileSize int // pixels
	Seed     int64

	// Threshold in (-1,1): noise above it becomes solid terrain.
	Threshold float64

	// Scale stretches the noise field; larger means smoother terrain.
	Scale float64

	// DecorChance in [0,1] is the probability that a walkable floor
	// tile becomes decor (the tile-swap subsystem's raw material).
	DecorChance float64
}

// Validate returns every configuration violation found.
func (c StageGenConfig) Validate() []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Width < 4 || c.Height < 4 {
		fail("stage must be at least 4x4 tiles, got %dx%d", c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		fail("tile size must be positive, got %d", c.TileSize)
	}
	if c.Threshold <= -1 || c.Threshold >= 1 {
		fail("threshold must be in (-1,1), got %v", c.Threshold)
	}
	if c.Scale <= 0 {
		fail("scale must be positive, got %v", c.Scale)
	}
	if c.DecorChance < 0 || c.DecorChance > 1 {
		fail("decor chance must be in [0,1], got %v", c.DecorChance)
	}
	return errs
}

// GenerateStage builds a stage from layered perlin noise: a solid
// border, noise-thresholded terrain, decor sprinkled on walkable floor
// and a spawn point searched outward from the center. The same seed
// always yields the same stage.
func GenerateStage(cfg StageGenConfig) (*entity.Stage, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("stagegen: invalid config: %w", errors.Join(errs...))
	}

	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	tiles := make([][]entity.Tile, cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		tiles[y] = make([]entity.Tile, cfg.Width)
		for x := 0; x < cfg.Width; x++ {
			if x == 0 || x == cfg.Width-1 || y == 0 || y == cfg.Height-1 {
				tiles[y][x] = entity.Tile{Type: entity.TileWall, Solid: true, NoSwap: true}
				continue
			}
			v := noise.Noise2D(float64(x)/cfg.Scale, float64(y)/cfg.Scale)
			if v > cfg.Threshold {
				tiles[y][x] = entity.Tile{Type: entity.TileWall, Solid: true}
			} else {
				tiles[y][x] = entity.Tile{Type: entity.TileEmpty}
			}
		}
	}

	stage := &entity.Stage{
		Width:    cfg.Width,
		Height:   cfg.Height,
		TileSize: cfg.TileSize,
		Tiles:    tiles,
	}

	sprinkleDecor(stage, rng, cfg.DecorChance)
	placeSpawn(stage)
	return stage, nil
}

// sprinkleDecor turns walkable floor tiles (empty with solid ground
// below) into decor with the configured probability.
func sprinkleDecor(stage *entity.Stage, rng *rand.Rand, chance float64) {
	for y := 1; y < stage.Height-1; y++ {
		for x := 1; x < stage.Width-1; x++ {
			tile := stage.GetTile(x, y)
			if tile.Type != entity.TileEmpty || tile.Solid {
				continue
			}
			if !stage.GetTile(x, y+1).Solid {
				continue
			}
			if rng.Float64() < chance {
				stage.SetTile(x, y, entity.Tile{Type: entity.TileDecor})
			}
		}
	}
}

// placeSpawn searches outward from the stage center for a standable
// tile, carving one out of the terrain if the noise left none.
func placeSpawn(stage *entity.Stage) {
	cx, cy := stage.Width/2, stage.Height/2

	for radius := 0; radius < stage.Width+stage.Height; radius++ {
		for ty := cy - radius; ty <= cy+radius; ty++ {
			for tx := cx - radius; tx <= cx+radius; tx++ {
				if !standable(stage, tx, ty) {
					continue
				}
				stage.SpawnX = tx*stage.TileSize + stage.TileSize/2
				stage.SpawnY = ty*stage.TileSize + stage.TileSize/2
				return
			}
		}
	}

	// Noise produced no floor at all: carve a platform at the center.
	stage.SetTile(cx, cy, entity.Tile{Type: entity.TileEmpty})
	stage.SetTile(cx, cy-1, entity.Tile{Type: entity.TileEmpty})
	stage.SetTile(cx, cy+1, entity.Tile{Type: entity.TileWall, Solid: true})
	stage.SpawnX = cx*stage.TileSize + stage.TileSize/2
	stage.SpawnY = cy*stage.TileSize + stage.TileSize/2
}

// standable means the tile and the one above are clear while the tile
// below is solid.
func standable(stage *entity.Stage, tx, ty int) bool {
	if !stage.InBounds(tx, ty) || !stage.InBounds(tx, ty-1) {
		return false
	}
	if stage.GetTile(tx, ty).Solid || stage.GetTile(tx, ty-1).Solid {
		return false
	}
	return stage.GetTile(tx, ty+1).Solid
}
