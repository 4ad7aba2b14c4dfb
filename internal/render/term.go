package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/tetris"
)

// Each board cell is two terminal columns wide so blocks look square.
const termCellWidth = 2

// Terminal draws snapshots onto a tcell screen. The board is framed by a
// one-character border starting at the screen origin.
type Terminal struct {
	Screen tcell.Screen
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{Screen: screen}
}

// CellStyle is the style used for a block of the given shape.
func CellStyle(id tetris.ShapeID) tcell.Style {
	c := ColorOf(id)
	fill := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	return tcell.StyleDefault.Background(fill).Foreground(tcell.ColorBlack)
}

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	ghostStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// BoardOrigin returns the screen position of board cell (0, 0).
func (t *Terminal) BoardOrigin() (int, int) {
	return 1, 1
}

// PanelColumn is the screen column where the status panel starts.
func (t *Terminal) PanelColumn(cols int) int {
	return cols*termCellWidth + 4
}

func (t *Terminal) Draw(snap tetris.Snapshot) {
	scr := t.Screen
	scr.Clear()

	ox, oy := t.BoardOrigin()
	t.drawBorder(ox-1, oy-1, snap.Cols*termCellWidth+2, snap.Rows+2)

	for y, row := range snap.Board {
		for x, cell := range row {
			if cell != tetris.Empty {
				t.putBlock(ox+x*termCellWidth, oy+y, CellStyle(cell))
			}
		}
	}

	if snap.State != tetris.GameOver {
		ghost := snap.Active
		ghost.Y = snap.GhostY
		for x, y := range ghost.Cells() {
			if y >= 0 {
				px := ox + x*termCellWidth
				scr.SetContent(px, oy+y, '[', nil, ghostStyle)
				scr.SetContent(px+1, oy+y, ']', nil, ghostStyle)
			}
		}

		for x, y := range snap.Active.Cells() {
			if y >= 0 {
				t.putBlock(ox+x*termCellWidth, oy+y, CellStyle(snap.Active.Shape))
			}
		}
	}

	px := t.PanelColumn(snap.Cols)
	t.print(px, 1, fmt.Sprintf("SCORE %d", snap.Score))
	t.print(px, 2, fmt.Sprintf("LEVEL %d", snap.Level))
	t.print(px, 3, fmt.Sprintf("LINES %d", snap.Lines))

	t.print(px, 5, "NEXT")
	for row, col := range snap.Next.Matrix.Cells() {
		t.putBlock(px+col*termCellWidth, 6+row, CellStyle(snap.Next.Shape))
	}

	switch snap.State {
	case tetris.Paused:
		t.print(px, 11, "PAUSED")
	case tetris.GameOver:
		t.print(px, 11, "GAME OVER")
		t.print(px, 12, "r to restart")
	}

	t.print(px, 14, "arrows move/rotate")
	t.print(px, 15, "space hard drop")
	t.print(px, 16, "p pause  q quit")

	scr.Show()
}

func (t *Terminal) putBlock(x, y int, style tcell.Style) {
	for i := range termCellWidth {
		t.Screen.SetContent(x+i, y, ' ', nil, style)
	}
}

func (t *Terminal) print(x, y int, s string) {
	for i, r := range s {
		t.Screen.SetContent(x+i, y, r, nil, textStyle)
	}
}

func (t *Terminal) drawBorder(x, y, w, h int) {
	scr := t.Screen
	for i := 1; i < w-1; i++ {
		scr.SetContent(x+i, y, tcell.RuneHLine, nil, borderStyle)
		scr.SetContent(x+i, y+h-1, tcell.RuneHLine, nil, borderStyle)
	}
	for j := 1; j < h-1; j++ {
		scr.SetContent(x, y+j, tcell.RuneVLine, nil, borderStyle)
		scr.SetContent(x+w-1, y+j, tcell.RuneVLine, nil, borderStyle)
	}
	scr.SetContent(x, y, tcell.RuneULCorner, nil, borderStyle)
	scr.SetContent(x+w-1, y, tcell.RuneURCorner, nil, borderStyle)
	scr.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, borderStyle)
	scr.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, borderStyle)
}
