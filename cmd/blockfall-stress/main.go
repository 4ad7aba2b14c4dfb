// Command blockfall-stress runs headless bot games as fast as possible and
// prints a markdown report of frame times and results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/plus3/blockfall/internal/bot"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/game"
	"github.com/plus3/blockfall/internal/input"
	"github.com/plus3/blockfall/tetris"
)

// frameStep is the synthetic time between two frames.
const frameStep = 16 * time.Millisecond

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	sessions := flag.Int("sessions", 4, "The number of games played side by side.")
	botName := flag.String("bot", "greedy", "The bot to play with: random, greedy or a path to a Lua script.")
	seed := flag.Uint64("seed", 1, "Seed for piece randomizers and the random bot.")
	randomizer := flag.String("randomizer", config.RandomizerUniform, "Piece randomizer: uniform or bag.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Default()
	cfg.Randomizer = *randomizer
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.SetupLogging(os.Stderr)

	report := &Report{
		Duration:       *duration,
		Sessions:       *sessions,
		Bot:            *botName,
		Randomizer:     *randomizer,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runners := make([]*runner, 0, *sessions)
	for i := range *sessions {
		b, err := newBot(*botName, *seed+uint64(i))
		if err != nil {
			log.Fatal().Err(err).Str("bot", *botName).Msg("failed to create bot")
		}
		if closer, ok := b.(interface{ Close() }); ok {
			defer closer.Close()
		}

		rc := cfg
		rc.Seed = *seed + uint64(i)
		runners = append(runners, newRunner(rc, b, report))
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().
		Dur("duration", *duration).
		Int("sessions", *sessions).
		Str("bot", *botName).
		Msg("running stress test")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	now := time.Unix(0, 0)

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			now = now.Add(frameStep)

			updateStart := time.Now()
			for _, r := range runners {
				r.session.Step(now)
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.SimulatedTime = now.Sub(time.Unix(0, 0))
	report.UpdateTime.Finalize()
	for _, r := range runners {
		report.Decisions += r.driver.Decisions()
		report.Locks += r.locks
		report.Dropped += r.session.Queue().Dropped()
		if r.session.Engine().State() != tetris.GameOver {
			report.addGame(r.session.Engine().Score())
		}
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info().
		Int64("updates", report.TotalUpdates).
		Int("games", report.Games).
		Msg("stress test finished")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

// runner is one headless session plus the bot driving it.
type runner struct {
	session *game.Session
	driver  *bot.Driver
	locks   int
}

func newRunner(cfg config.Config, b bot.Bot, report *Report) *runner {
	r := &runner{}
	queue := input.NewQueue(input.DefaultQueueCapacity)

	engine := game.NewEngine(cfg, tetris.WithListener(func(ev tetris.Event) {
		switch ev.Kind {
		case tetris.EventLocked:
			r.locks++
		case tetris.EventLinesCleared:
			report.Lines += ev.Rows
		case tetris.EventGameOver:
			report.addGame(ev.Score)
		}
	}))

	r.driver = &bot.Driver{
		Bot:         b,
		Engine:      engine,
		Queue:       queue,
		AutoRestart: true,
		Logger:      log.Logger,
	}
	r.session = game.NewSession(engine,
		game.WithQueue(queue),
		game.WithSystems(r.driver),
	)
	return r
}

func newBot(name string, seed uint64) (bot.Bot, error) {
	switch name {
	case "random":
		return bot.NewRandomBot(seed), nil
	case "greedy":
		return bot.NewGreedyBot(), nil
	default:
		return bot.LoadLuaBot(name, bot.WithLuaLogger(log.Logger))
	}
}
