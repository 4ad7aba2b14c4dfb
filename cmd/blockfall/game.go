package main

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/internal/debugui"
	debugui_ebiten "github.com/plus3/blockfall/internal/debugui/ebiten"
	"github.com/plus3/blockfall/internal/game"
	"github.com/plus3/blockfall/internal/render"
)

// Game implements ebiten.Game. Every Update steps the session once, so the
// engine lives on ebiten's update goroutine.
type Game struct {
	ctx      context.Context
	session  *game.Session
	screen   *render.Screen
	keyboard *keyboard
	touch    *touchscreen

	imguiBackend *debugui_ebiten.ImguiBackend
	imguiState   *debugui.InputState

	last time.Time
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	now := time.Now()
	var dt time.Duration
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	if g.imguiBackend != nil {
		g.imguiBackend.BeginFrame()
	}

	if g.imguiState != nil && g.imguiState.WantCaptureKeyboard {
		g.keyboard.Reset()
	} else {
		g.keyboard.Update(dt)
	}
	g.touch.Update()

	g.session.Step(now)

	if g.imguiBackend != nil {
		g.imguiBackend.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Draw(screen, g.session.Snapshot())

	if g.imguiBackend != nil {
		g.imguiBackend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.screen.Layout.Width(), g.screen.Layout.Height()
}
