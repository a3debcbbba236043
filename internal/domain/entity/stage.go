package entity

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileDecor
	TileDecorAlt
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool

	// NoSwap excludes the tile from random replacement for the whole
	// run, regardless of area bounds.
	NoSwap bool
}

// Stage represents the current stage's tile data
type Stage struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	SpawnX   int
	SpawnY   int
}

// NewStage allocates an empty stage of the given tile dimensions.
func NewStage(width, height, tileSize int) *Stage {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	return &Stage{Width: width, Height: height, TileSize: tileSize, Tiles: tiles}
}

// InBounds reports whether the tile coordinates lie inside the stage.
func (s *Stage) InBounds(tx, ty int) bool {
	return tx >= 0 && tx < s.Width && ty >= 0 && ty < s.Height
}

// GetTile returns the tile at the given tile coordinates.
// Reads past the sides or above the stage act as solid walls; reads
// below the stage are empty, so pits are open.
func (s *Stage) GetTile(tx, ty int) Tile {
	if !s.InBounds(tx, ty) {
		if ty >= s.Height {
			return Tile{Type: TileEmpty}
		}
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// SetTile overwrites the tile at the given tile coordinates.
// Out-of-bounds writes are ignored.
func (s *Stage) SetTile(tx, ty int, tile Tile) {
	if !s.InBounds(tx, ty) {
		return
	}
	s.Tiles[ty][tx] = tile
}

// GetTileAtPixel returns the tile at the given pixel coordinates
func (s *Stage) GetTileAtPixel(px, py int) Tile {
	tx := px / s.TileSize
	ty := py / s.TileSize
	return s.GetTile(tx, ty)
}

// IsSolidAt checks if the tile at pixel coordinates is solid
func (s *Stage) IsSolidAt(px, py int) bool {
	return s.GetTileAtPixel(px, py).Solid
}

// IsSolidRect reports whether any tile overlapped by the pixel-space
// rectangle is solid. Iterates all covered tiles so any rect size works.
func (s *Stage) IsSolidRect(x, y, w, h int) bool {
	tileSize := s.TileSize
	if tileSize <= 0 {
		tileSize = 16 // fallback
	}

	startTX := floorDiv(x, tileSize)
	endTX := floorDiv(x+w-1, tileSize)
	startTY := floorDiv(y, tileSize)
	endTY := floorDiv(y+h-1, tileSize)

	for ty := startTY; ty <= endTY; ty++ {
		for tx := startTX; tx <= endTX; tx++ {
			if s.GetTile(tx, ty).Solid {
				return true
			}
		}
	}

	return false
}

// floorDiv divides rounding toward negative infinity so rects partly
// left of or above the stage still land on the out-of-bounds wall.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
