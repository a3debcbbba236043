package system

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/CrimsonSeraph/BoundaryError/internal/domain/entity"
)

// sampleAttempts bounds how many random picks one swap attempt makes
// before giving up; a dense exclusion area must not stall the tick.
const sampleAttempts = 8

// TileArea is an inclusive rectangle in tile coordinates that bounds
// where the swapper may sample.
type TileArea struct {
	MinX, MinY int
	MaxX, MaxY int
}

// TileSwapConfig tunes the random tile replacement subsystem.
type TileSwapConfig struct {
	// Interval is the seconds between swap attempts.
	Interval float64

	// Chance in [0,1] is the probability an attempt actually swaps.
	Chance float64

	// RestoreAfter is how long a swapped tile lives before the
	// original is restored.
	RestoreAfter float64

	// MaxActive bounds the number of concurrently swapped tiles.
	MaxActive int

	// Area bounds sampling in tile coordinates.
	Area TileArea

	// Replace maps a swappable tile type to its replacement.
	Replace map[entity.TileType]entity.TileType

	// ExcludeTypes lists tile types excluded for the whole run.
	ExcludeTypes []entity.TileType
}

// Validate returns every configuration violation found.
func (c TileSwapConfig) Validate() []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Interval <= 0 {
		fail("swap interval must be positive, got %v", c.Interval)
	}
	if c.Chance < 0 || c.Chance > 1 {
		fail("swap chance must be in [0,1], got %v", c.Chance)
	}
	if c.RestoreAfter <= 0 {
		fail("restore delay must be positive, got %v", c.RestoreAfter)
	}
	if c.MaxActive < 0 {
		fail("max active swaps must not be negative, got %d", c.MaxActive)
	}
	if c.Area.MaxX < c.Area.MinX || c.Area.MaxY < c.Area.MinY {
		fail("sample area is empty: %+v", c.Area)
	}
	if len(c.Replace) == 0 {
		fail("replacement table is empty")
	}
	return errs
}

// SwapRecord tracks one live replacement so it can be restored.
type SwapRecord struct {
	ID       uuid.UUID
	TX, TY   int
	Original entity.Tile

	// ExpiresAt is simulation time in seconds.
	ExpiresAt float64
}

// TileSwapSystem randomly replaces tiles inside a bounded area of the
// stage and restores them after a delay. Randomness comes from the
// injected source only, so a seeded run is reproducible.
type TileSwapSystem struct {
	cfg      TileSwapConfig
	stage    *entity.Stage
	rng      *rand.Rand
	excluded map[entity.TileType]struct{}

	now      float64
	cooldown float64
	active   []SwapRecord
	activeAt map[[2]int]struct{}
}

// NewTileSwapSystem validates the config and returns a ready system.
func NewTileSwapSystem(cfg TileSwapConfig, stage *entity.Stage, rng *rand.Rand) (*TileSwapSystem, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("tileswap: invalid config: %w", errors.Join(errs...))
	}
	if stage == nil {
		return nil, errors.New("tileswap: nil stage")
	}
	if rng == nil {
		return nil, errors.New("tileswap: nil random source")
	}

	excluded := make(map[entity.TileType]struct{}, len(cfg.ExcludeTypes))
	for _, t := range cfg.ExcludeTypes {
		excluded[t] = struct{}{}
	}

	return &TileSwapSystem{
		cfg:      cfg,
		stage:    stage,
		rng:      rng,
		excluded: excluded,
		cooldown: cfg.Interval,
		activeAt: make(map[[2]int]struct{}),
	}, nil
}

// Update advances the subsystem by dt seconds: expired swaps are
// restored first, then at most one new swap attempt runs per elapsed
// interval.
func (s *TileSwapSystem) Update(dt float64) {
	s.now += dt
	s.restoreExpired()

	s.cooldown -= dt
	for s.cooldown <= 0 {
		s.cooldown += s.cfg.Interval
		s.attemptSwap()
	}
}

// ActiveSwaps returns a copy of the live swap records.
func (s *TileSwapSystem) ActiveSwaps() []SwapRecord {
	out := make([]SwapRecord, len(s.active))
	copy(out, s.active)
	return out
}

// RestoreAll puts every swapped tile back immediately.
func (s *TileSwapSystem) RestoreAll() {
	for _, rec := range s.active {
		s.stage.SetTile(rec.TX, rec.TY, rec.Original)
	}
	s.active = s.active[:0]
	clear(s.activeAt)
}

func (s *TileSwapSystem) restoreExpired() {
	kept := s.active[:0]
	for _, rec := range s.active {
		if rec.ExpiresAt > s.now {
			kept = append(kept, rec)
			continue
		}
		s.stage.SetTile(rec.TX, rec.TY, rec.Original)
		delete(s.activeAt, [2]int{rec.TX, rec.TY})
	}
	s.active = kept
}

func (s *TileSwapSystem) attemptSwap() {
	if len(s.active) >= s.cfg.MaxActive {
		return
	}
	if s.rng.Float64() >= s.cfg.Chance {
		return
	}

	for i := 0; i < sampleAttempts; i++ {
		tx, ty, ok := s.sample()
		if !ok {
			continue
		}
		s.swap(tx, ty)
		return
	}
}

// sample picks a uniform tile inside the area bounds, clipped to the
// stage, and filters by the run-exclusion rules.
func (s *TileSwapSystem) sample() (int, int, bool) {
	tx := s.cfg.Area.MinX + s.rng.Intn(s.cfg.Area.MaxX-s.cfg.Area.MinX+1)
	ty := s.cfg.Area.MinY + s.rng.Intn(s.cfg.Area.MaxY-s.cfg.Area.MinY+1)

	if !s.stage.InBounds(tx, ty) {
		return 0, 0, false
	}
	if _, busy := s.activeAt[[2]int{tx, ty}]; busy {
		return 0, 0, false
	}

	tile := s.stage.GetTile(tx, ty)
	if tile.NoSwap {
		return 0, 0, false
	}
	if _, excluded := s.excluded[tile.Type]; excluded {
		return 0, 0, false
	}
	if _, ok := s.cfg.Replace[tile.Type]; !ok {
		return 0, 0, false
	}
	return tx, ty, true
}

func (s *TileSwapSystem) swap(tx, ty int) {
	original := s.stage.GetTile(tx, ty)

	replaced := original
	replaced.Type = s.cfg.Replace[original.Type]
	s.stage.SetTile(tx, ty, replaced)

	s.active = append(s.active, SwapRecord{
		ID:        uuid.New(),
		TX:        tx,
		TY:        ty,
		Original:  original,
		ExpiresAt: s.now + s.cfg.RestoreAfter,
	})
	s.activeAt[[2]int{tx, ty}] = struct{}{}
}
