package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/internal/input"
	"github.com/plus3/blockfall/tetris"
)

// EngineWindow shows the game state and offers buttons that push actions
// through the regular input queue.
type EngineWindow struct {
	snapshot func() tetris.Snapshot
	queue    *input.Queue
}

func NewEngineWindow(snapshot func() tetris.Snapshot, queue *input.Queue) *EngineWindow {
	return &EngineWindow{snapshot: snapshot, queue: queue}
}

func (ew *EngineWindow) Item() Item {
	return Item{Render: ew.Render}
}

func (ew *EngineWindow) Render() {
	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := ew.snapshot()
	imgui.Text(fmt.Sprintf("State: %s", s.State))
	imgui.Text(fmt.Sprintf("Score: %d  Level: %d  Lines: %d", s.Score, s.Level, s.Lines))
	imgui.Text(fmt.Sprintf("Drop Interval: %s", s.DropInterval))
	imgui.Text(fmt.Sprintf("Active: %s at (%d, %d), ghost row %d", s.Active.Shape, s.Active.X, s.Active.Y, s.GhostY))
	imgui.Text(fmt.Sprintf("Next: %s", s.Next.Shape))
	imgui.Text(fmt.Sprintf("Version: %d  Dropped Inputs: %d", s.Version, ew.queue.Dropped()))

	if imgui.Button("Pause") {
		ew.queue.Push(input.ActionPause)
	}
	imgui.SameLine()
	if imgui.Button("Restart") {
		ew.queue.Push(input.ActionRestart)
	}
	imgui.SameLine()
	if imgui.Button("Hard Drop") {
		ew.queue.Push(input.ActionHardDrop)
	}

	if imgui.TreeNodeStr("Pieces") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PieceTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Shape")
			imgui.TableSetupColumn("Spawned")
			imgui.TableHeadersRow()

			for shape := range tetris.AllShapes() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(shape.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.Spawned[shape]))
			}

			imgui.EndTable()
		}
		imgui.BulletText(fmt.Sprintf("Locked: %d", s.Locks))
		imgui.TreePop()
	}

	imgui.End()
}
