package ebiten_test

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/internal/debugui"
	debugui_ebiten "github.com/plus3/blockfall/internal/debugui/ebiten"
	"github.com/plus3/blockfall/internal/game"
	"github.com/plus3/blockfall/tetris"
)

// Game implements ebiten.Game and draws debug windows over a game session.
type Game struct {
	session      *game.Session
	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Begin the ImGui frame before stepping the session
	g.imguiBackend.BeginFrame()

	// Runs every system, including the debug UI system
	g.session.Step(time.Now())

	g.imguiBackend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw the board
	// ...

	// Draw ImGui overlay on top
	g.imguiBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	imguiBackend := debugui_ebiten.NewImguiBackend("Blockfall ImGui Example", 1280, 720)

	var session *game.Session
	ui := debugui.NewSystem(debugui.Item{
		Render: func() {
			snap := session.Snapshot()
			imgui.Begin("Debug Window")
			imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
			imgui.End()
		},
	})

	session = game.NewSession(tetris.New(), game.WithSystems(ui))

	g := &Game{
		session:      session,
		imguiBackend: imguiBackend,
	}

	if err := ebiten.RunGame(g); err != nil {
		panic(err)
	}
}
