package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/CrimsonSeraph/BoundaryError/internal/application/game"
	"github.com/CrimsonSeraph/BoundaryError/internal/application/scene/playing"
	"github.com/CrimsonSeraph/BoundaryError/internal/application/system"
	"github.com/CrimsonSeraph/BoundaryError/internal/domain/entity"
	"github.com/CrimsonSeraph/BoundaryError/internal/infrastructure/config"
)

func main() {
	seedFlag := flag.Int64("seed", 0, "Seed for stage generation and tile swapping (0 = time-based)")
	stageFlag := flag.String("stage", "", "Stage name override (empty = config selection)")
	configDir := flag.String("configs", "", "Load configs from this directory and live-reload on change")
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	loader, err := buildLoader(*configDir)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadGame()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	stage, err := buildStage(loader, cfg, *stageFlag, seed)
	if err != nil {
		log.Fatalf("Failed to build stage: %v", err)
	}

	playScene, err := playing.New(cfg, stage, seed)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}
	g := game.New(playScene, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight, cfg.Display.Framerate)

	if *configDir != "" {
		stop, err := watchConfigs(*configDir, loader, playScene)
		if err != nil {
			log.Fatalf("Failed to watch configs: %v", err)
		}
		defer stop()
	}

	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale,
		cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle("Boundary Error")
	ebiten.SetTPS(cfg.Display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// buildLoader picks between the embedded configs and a directory on
// disk. The directory form is for live tuning during development.
func buildLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys), nil
}

// watchConfigs reloads game.yaml whenever a YAML file in the config
// directory changes and queues the result on the playing scene.
func watchConfigs(dir string, loader *config.Loader, playScene *playing.Playing) (func(), error) {
	w, err := config.NewWatcher(dir)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case name, ok := <-w.Events:
				if !ok {
					return
				}
				cfg, err := loader.LoadGame()
				if err != nil {
					log.Printf("Config reload failed (%s): %v", name, err)
					continue
				}
				playScene.QueueTuning(cfg)
				log.Printf("Config reloaded: %s", name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)
			}
		}
	}()

	return func() { _ = w.Close() }, nil
}

// buildStage resolves the stage selection: an explicit -stage flag
// loads that file, otherwise the config picks between an authored
// stage and perlin generation.
func buildStage(loader *config.Loader, cfg *config.GameConfig, override string, seed int64) (*entity.Stage, error) {
	name := override
	if name == "" && cfg.Stage.Mode == "load" {
		name = cfg.Stage.Name
	}

	if name != "" {
		stageCfg, err := loader.LoadStage(name)
		if err != nil {
			return nil, fmt.Errorf("load stage %q: %w", name, err)
		}
		stage, err := system.LoadStage(stageCfg)
		if err != nil {
			return nil, fmt.Errorf("load stage %q: %w", name, err)
		}
		log.Printf("Loaded stage %q", name)
		return stage, nil
	}

	genCfg := system.StageGenConfig{
		Width:       cfg.Stage.Gen.Width,
		Height:      cfg.Stage.Gen.Height,
		TileSize:    cfg.Stage.Gen.TileSize,
		Seed:        cfg.Stage.Gen.Seed,
		Threshold:   cfg.Stage.Gen.Threshold,
		Scale:       cfg.Stage.Gen.Scale,
		DecorChance: cfg.Stage.Gen.DecorChance,
	}
	if genCfg.Seed == 0 {
		genCfg.Seed = seed
	}

	stage, err := system.GenerateStage(genCfg)
	if err != nil {
		return nil, fmt.Errorf("generate stage: %w", err)
	}
	log.Printf("Generated stage %dx%d (seed %d)", stage.Width, stage.Height, genCfg.Seed)
	return stage, nil
}
