package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/plus3/blockfall/internal/input"
	"github.com/plus3/blockfall/tetris"
)

// DefaultLuaTimeout bounds a single call to a script's decide function.
const DefaultLuaTimeout = 50 * time.Millisecond

// LuaBot delegates decisions to a script that defines a global function
//
//	decide(state) -> { "left", "rotate", "harddrop", ... }
//
// state is a table with the fields board (rows of shape ids, 0 for empty),
// piece and next (shape, x, y, matrix), ghost_y, rows, cols, score, level,
// lines and state. The script runs without the os and io libraries.
// A LuaBot is not safe for concurrent use.
type LuaBot struct {
	L       *lua.LState
	timeout time.Duration
	logger  zerolog.Logger
	err     error
}

type LuaOption func(*LuaBot)

func WithLuaTimeout(d time.Duration) LuaOption {
	return func(b *LuaBot) {
		b.timeout = d
	}
}

func WithLuaLogger(logger zerolog.Logger) LuaOption {
	return func(b *LuaBot) {
		b.logger = logger
	}
}

// NewLuaBot compiles src and checks that it defines decide.
func NewLuaBot(src string, opts ...LuaOption) (*LuaBot, error) {
	b := &LuaBot{
		L:       lua.NewState(lua.Options{SkipOpenLibs: true}),
		timeout: DefaultLuaTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := openSafeLibs(b.L); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.L.DoString(src); err != nil {
		b.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	if fn := b.L.GetGlobal("decide"); fn.Type() != lua.LTFunction {
		b.Close()
		return nil, errors.New("script does not define a decide function")
	}
	return b, nil
}

// LoadLuaBot reads a script from path.
func LoadLuaBot(path string, opts ...LuaOption) (*LuaBot, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	b, err := NewLuaBot(string(src), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func openSafeLibs(L *lua.LState) error {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("open %s library: %w", lib.name, err)
		}
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return nil
}

func (b *LuaBot) Close() {
	b.L.Close()
}

// Err returns the error raised by the most recent decision, if any.
func (b *LuaBot) Err() error {
	return b.err
}

// Decide calls the script. Script errors and unknown action names are
// logged and yield no actions, leaving the piece to gravity.
func (b *LuaBot) Decide(s tetris.Snapshot) []input.Action {
	actions, err := b.decide(s)
	b.err = err
	if err != nil {
		b.logger.Warn().Err(err).Msg("lua bot decision failed")
		return nil
	}
	return actions
}

func (b *LuaBot) decide(s tetris.Snapshot) ([]input.Action, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	b.L.SetContext(ctx)
	defer b.L.RemoveContext()

	if err := b.L.CallByParam(lua.P{
		Fn:      b.L.GetGlobal("decide"),
		NRet:    1,
		Protect: true,
	}, b.stateTable(s)); err != nil {
		return nil, fmt.Errorf("decide: %w", err)
	}

	ret := b.L.Get(-1)
	b.L.Pop(1)

	if ret == lua.LNil {
		return nil, nil
	}
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("decide returned %s, want a table", ret.Type())
	}

	actions := make([]input.Action, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		v := tbl.RawGetInt(i)
		name, ok := v.(lua.LString)
		if !ok {
			return nil, fmt.Errorf("action %d is a %s, want a string", i, v.Type())
		}
		action, err := input.ParseAction(string(name))
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func (b *LuaBot) stateTable(s tetris.Snapshot) *lua.LTable {
	L := b.L
	state := L.NewTable()

	board := L.CreateTable(len(s.Board), 0)
	for _, row := range s.Board {
		cells := L.CreateTable(len(row), 0)
		for _, cell := range row {
			cells.Append(lua.LNumber(cell))
		}
		board.Append(cells)
	}
	state.RawSetString("board", board)
	state.RawSetString("piece", b.pieceTable(s.Active))
	state.RawSetString("next", b.pieceTable(s.Next))
	state.RawSetString("ghost_y", lua.LNumber(s.GhostY))
	state.RawSetString("rows", lua.LNumber(s.Rows))
	state.RawSetString("cols", lua.LNumber(s.Cols))
	state.RawSetString("score", lua.LNumber(s.Score))
	state.RawSetString("level", lua.LNumber(s.Level))
	state.RawSetString("lines", lua.LNumber(s.Lines))
	state.RawSetString("state", lua.LString(s.State.String()))
	return state
}

func (b *LuaBot) pieceTable(p tetris.Piece) *lua.LTable {
	L := b.L
	t := L.NewTable()
	t.RawSetString("shape", lua.LString(p.Shape.String()))
	t.RawSetString("x", lua.LNumber(p.X))
	t.RawSetString("y", lua.LNumber(p.Y))

	matrix := L.CreateTable(p.Matrix.Size(), 0)
	for _, row := range p.Matrix {
		cells := L.CreateTable(len(row), 0)
		for _, filled := range row {
			cells.Append(lua.LBool(filled))
		}
		matrix.Append(cells)
	}
	t.RawSetString("matrix", matrix)
	return t
}
