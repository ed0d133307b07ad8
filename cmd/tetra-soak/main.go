package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tetra/engine"
	"github.com/plus3/tetra/piece"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for piece selection and the bot's moves.")
	columns := flag.Int("columns", 12, "Board width.")
	rows := flag.Int("rows", 24, "Visible board height.")
	overflow := flag.Int("overflow", 4, "Hidden rows above the board.")
	verbose := flag.Bool("v", false, "Log every game start, level-up and game over.")
	flag.Parse()

	cfg := engine.DefaultConfig()
	cfg.Columns = *columns
	cfg.Rows = *rows
	cfg.OverflowRows = *overflow
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Bad board: %v", err)
	}
	if *verbose {
		cfg.Logger = log.New(os.Stderr, "engine: ", log.LstdFlags)
	}

	log.Println("Starting soak run...")

	report := &Report{
		Duration: *duration,
		Seed:     *seed,
		Columns:  *columns,
		Rows:     *rows,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	pieces := piece.NewFactory(rand.NewPCG(*seed, 1))
	bot := rand.New(rand.NewPCG(*seed, 2))
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			game, err := playGame(ctx, cfg, pieces, bot)
			if err != nil {
				log.Fatalf("Failed to start game: %v", err)
			}
			report.Add(game)
		}
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak run finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// playGame runs one game to completion, or until ctx expires. A manual clock
// stands in for wall time so the bot can play as fast as the engine allows.
func playGame(ctx context.Context, cfg engine.Config, pieces *piece.Factory, bot *rand.Rand) (Game, error) {
	clock := engine.NewManualClock()
	cfg.Clock = clock
	cfg.Factory = pieces

	var final int
	over := false
	cfg.OnGameOver = func(score int) {
		final = score
		over = true
	}

	e, err := engine.New(cfg)
	if err != nil {
		return Game{}, err
	}
	e.Start()

	moves := []func(){e.MoveLeft, e.MoveRight, e.RotateLeft, e.RotateRight, e.SoftDrop}
	for !over {
		if ctx.Err() != nil {
			e.Stop()
			break
		}
		switch n := bot.IntN(20); {
		case n == 0:
			e.HardDrop()
		case n < 5:
			clock.Advance(e.Interval())
		default:
			moves[bot.IntN(len(moves))]()
		}
	}

	return Game{
		ID:    e.GameID().String(),
		Score: final,
		Level: e.Level(),
		Stats: e.Stats(),
	}, nil
}
