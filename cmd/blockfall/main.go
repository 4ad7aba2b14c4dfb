// Command blockfall plays the game in a desktop window.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/debugui"
	debugui_ebiten "github.com/plus3/blockfall/internal/debugui/ebiten"
	"github.com/plus3/blockfall/internal/game"
	"github.com/plus3/blockfall/internal/input"
	"github.com/plus3/blockfall/internal/render"
	"github.com/plus3/blockfall/internal/spectate"
)

const (
	debugWidth  = 1280
	debugHeight = 720
)

func main() {
	cfg, err := config.Load("blockfall", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.SetupLogging(os.Stderr)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("blockfall failed")
	}
}

func run(cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine := game.NewEngine(cfg)
	queue := input.NewQueue(input.DefaultQueueCapacity)
	layout := render.Layout{Rows: engine.Rows(), Cols: engine.Cols(), CellSize: cfg.CellSize}

	g := &Game{
		ctx:      ctx,
		screen:   render.NewScreen(layout),
		keyboard: newKeyboard(queue, cfg),
		touch:    newTouchscreen(queue),
	}

	opts := []game.Option{
		game.WithQueue(queue),
		game.WithLogger(log.Logger),
	}

	var hub *spectate.Hub
	if cfg.SpectateAddr != "" {
		hub = spectate.NewHub(log.Logger)
		opts = append(opts, game.WithSink(hub))
	}

	var imguiSystem *debugui.System
	if cfg.DebugUI {
		imguiSystem = debugui.NewSystem()
		opts = append(opts, game.WithSystems(imguiSystem))
	}

	g.session = game.NewSession(engine, opts...)

	if imguiSystem != nil {
		g.imguiBackend = debugui_ebiten.NewImguiBackend("Blockfall", debugWidth, debugHeight)
		g.imguiState = imguiSystem.State
		imguiSystem.Items = append(imguiSystem.Items,
			debugui.NewEngineWindow(g.session.Snapshot, queue).Item(),
			debugui.NewPerformanceWindow(120, g.session.SchedulerStats).Item(),
		)
	} else {
		ebiten.SetWindowSize(layout.Width(), layout.Height())
		ebiten.SetWindowTitle("Blockfall")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if hub != nil {
		spectate.Serve(ctx, cfg.SpectateAddr, hub, log.Logger, spectate.WithStats(g.session.SchedulerStats))
	}

	log.Info().
		Str("randomizer", cfg.Randomizer).
		Bool("debug_ui", cfg.DebugUI).
		Str("spectate", cfg.SpectateAddr).
		Msg("starting")

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
