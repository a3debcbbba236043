package system

import (
	"errors"
	"fmt"

	"github.com/CrimsonSeraph/BoundaryError/internal/domain/entity"
	"github.com/CrimsonSeraph/BoundaryError/internal/infrastructure/config"
)

// TileTypeFromName maps a config tile type name to its entity type.
// Unknown names map to empty.
func TileTypeFromName(name string) entity.TileType {
	switch name {
	case "wall":
		return entity.TileWall
	case "decor":
		return entity.TileDecor
	case "decorAlt":
		return entity.TileDecorAlt
	default:
		return entity.TileEmpty
	}
}

// LoadStage validates a StageConfig and converts it into a Stage
// entity.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("stageloader: invalid stage config: %w", errors.Join(errs...))
	}

	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileHeight := len(cfg.Layers.Collision)

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x, char := range row {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				tiles[y][x] = entity.Tile{Type: entity.TileEmpty}
				continue
			}

			tiles[y][x] = entity.Tile{
				Type:   TileTypeFromName(mapping.Type),
				Solid:  mapping.Solid,
				NoSwap: mapping.NoSwap,
			}
		}
	}

	return &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Tiles:    tiles,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}, nil
}
