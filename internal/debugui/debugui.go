// Package debugui provides Dear ImGui debug windows for a running game session.
// Windows are rendered through the frame loop so they always show the state
// of the frame that just finished.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/internal/loop"
)

// Item holds a Dear ImGui render function.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Game input adapters should ignore the devices ImGui wants.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System updates InputState and defers every item's render function to the
// end of the frame. It must run between the backend's BeginFrame and
// EndFrame calls.
type System struct {
	Items []Item
	State *InputState
}

func NewSystem(items ...Item) *System {
	return &System{Items: items, State: &InputState{}}
}

func (s *System) Name() string { return "ImguiSystem" }

func (s *System) Execute(frame *loop.Frame) {
	io := imgui.CurrentIO()
	s.State.WantCaptureMouse = io.WantCaptureMouse()
	s.State.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range s.Items {
		frame.Commands.Defer(item.Render)
	}
}
