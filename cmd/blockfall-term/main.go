// Command blockfall-term plays the game in a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/game"
	"github.com/plus3/blockfall/internal/loop"
	"github.com/plus3/blockfall/internal/render"
	"github.com/plus3/blockfall/internal/spectate"
)

func main() {
	cfg, err := config.Load("blockfall-term", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("open log file: %w", err))
		os.Exit(1)
	}
	defer logFile.Close()
	cfg.SetupLogging(logFile)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("blockfall-term failed")
	}
}

func run(cfg config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	term := render.NewTerminal(screen)
	engine := game.NewEngine(cfg)

	var redraw atomic.Bool
	redrawSystem := loop.SystemFunc(func(frame *loop.Frame) {
		if redraw.Swap(false) {
			screen.Sync()
			term.Draw(engine.Snapshot())
		}
	})

	opts := []game.Option{
		game.WithLogger(log.Logger),
		game.WithSink(game.SinkFunc(term.Draw)),
		game.WithSystems(redrawSystem),
	}

	var hub *spectate.Hub
	if cfg.SpectateAddr != "" {
		hub = spectate.NewHub(log.Logger)
		opts = append(opts, game.WithSink(hub))
	}

	session := game.NewSession(engine, opts...)
	if hub != nil {
		spectate.Serve(ctx, cfg.SpectateAddr, hub, log.Logger, spectate.WithStats(session.SchedulerStats))
	}

	go pollEvents(screen, session, &redraw, cancel)

	log.Info().
		Str("randomizer", cfg.Randomizer).
		Dur("tick", cfg.TickRate).
		Msg("terminal game started")
	session.Run(ctx, cfg.TickRate)
	return nil
}

// pollEvents forwards key presses to the session until a quit key is pressed
// or the screen is finalized.
func pollEvents(screen tcell.Screen, session *game.Session, redraw *atomic.Bool, quit context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			action, stop := keyAction(ev)
			if stop {
				quit()
				return
			}
			session.Push(action)
		case *tcell.EventResize:
			redraw.Store(true)
		}
	}
}
