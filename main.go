package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"jump61/engine"
	"jump61/game"
	"jump61/metrics"
	"jump61/searcher"
)

type config struct {
	Size    int    `yaml:"size"`
	Depth   int    `yaml:"depth"`
	Seed    uint64 `yaml:"seed"`
	Games   int    `yaml:"games"`
	Red     string `yaml:"red"`
	Blue    string `yaml:"blue"`
	Verbose bool   `yaml:"verbose"`
	OutDir  string `yaml:"out_dir"`
}

func defaultConfig() config {
	return config{
		Size:  6,
		Depth: searcher.DefaultDepth,
		Seed:  uint64(time.Now().UnixNano()),
		Games: 1,
		Red:   "ai",
		Blue:  "ai",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	size := flag.Int("size", 0, "Board size (rows and columns)")
	depth := flag.Int("depth", 0, "AI search depth in plies")
	seed := flag.Uint64("seed", 0, "Seed for random players")
	games := flag.Int("games", 0, "Number of games to play")
	red := flag.String("red", "", "Red player kind: ai, random, or human")
	blue := flag.String("blue", "", "Blue player kind: ai, random, or human")
	verbose := flag.Bool("v", false, "Log every move")
	outDir := flag.String("out", "", "Directory for CSV game records (optional)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jump61: %v\n", err)
		os.Exit(1)
	}
	// Flags override the config file.
	if *size > 0 {
		cfg.Size = *size
	}
	if *depth > 0 {
		cfg.Depth = *depth
	}
	if *seed > 0 {
		cfg.Seed = *seed
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *red != "" {
		cfg.Red = *red
	}
	if *blue != "" {
		cfg.Blue = *blue
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("jump61 failed")
	}
}

func run(cfg config) error {
	var writer *metrics.Writer
	if cfg.OutDir != "" {
		w, err := metrics.NewWriter(cfg.OutDir)
		if err != nil {
			return err
		}
		writer = w
		log.Info().Str("dir", w.Dir()).Msg("writing game records")
	}

	var gameRecords []metrics.GameRecord
	for i := 1; i <= cfg.Games; i++ {
		redPlayer, err := newPlayer(cfg.Red, game.Red, cfg)
		if err != nil {
			return err
		}
		bluePlayer, err := newPlayer(cfg.Blue, game.Blue, cfg)
		if err != nil {
			return err
		}

		e := engine.NewLocal(cfg.Size, redPlayer, bluePlayer)
		start := time.Now()
		winner, err := e.Run()
		if err != nil {
			return err
		}
		fmt.Printf("Game %d: %s wins in %d moves\n", i, winner, e.Board.NumMoves())

		if writer != nil {
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:        i,
				BoardSize: cfg.Size,
				Winner:    winner.String(),
				Moves:     e.Board.NumMoves(),
				StartTime: start,
				EndTime:   time.Now(),
				Duration:  time.Since(start),
			})
			if err := writer.WriteMoveRecords(i, e.MoveRecords()); err != nil {
				return err
			}
		}
	}

	if writer != nil {
		if err := writer.WriteGameRecords(gameRecords); err != nil {
			return err
		}
	}
	return nil
}

func newPlayer(kind string, side game.Side, cfg config) (engine.Player, error) {
	switch kind {
	case "ai":
		return engine.NewAIPlayer(side, searcher.New(searcher.WithDepth(cfg.Depth))), nil
	case "random":
		// Offset the seed per side so self-play games are not mirrored.
		return engine.NewRandomPlayer(side, cfg.Seed+uint64(side)), nil
	case "human":
		return engine.NewHumanPlayer(side, os.Stdin, os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown player kind %q for %s", kind, side)
	}
}
