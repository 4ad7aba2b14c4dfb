package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/tetris"
)

var (
	gridColor    = color.RGBA{0x18, 0x18, 0x18, 0xff}
	panelColor   = color.RGBA{0x10, 0x10, 0x10, 0xff}
	overlayColor = color.RGBA{0x00, 0x00, 0x00, 0xa0}
)

// Screen draws snapshots onto an ebiten image.
type Screen struct {
	Layout Layout
	// ShowGhost outlines where the active piece would land.
	ShowGhost bool
}

func NewScreen(layout Layout) *Screen {
	return &Screen{Layout: layout, ShowGhost: true}
}

func (s *Screen) Draw(dst *ebiten.Image, snap tetris.Snapshot) {
	l := s.Layout
	dst.Fill(Background)

	vector.DrawFilledRect(dst, float32(l.BoardWidth()), 0,
		float32(l.Width()-l.BoardWidth()), float32(l.Height()), panelColor, false)

	for y := range l.Rows {
		for x := range l.Cols {
			r := l.Cell(x, y)
			vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y),
				float32(l.CellSize), float32(l.CellSize), 1, gridColor, false)
		}
	}

	for y, row := range snap.Board {
		for x, cell := range row {
			if cell != tetris.Empty {
				s.drawBlock(dst, float32(x*l.CellSize), float32(y*l.CellSize), cell)
			}
		}
	}

	if snap.State != tetris.GameOver {
		if s.ShowGhost && snap.GhostY != snap.Active.Y {
			ghost := snap.Active
			ghost.Y = snap.GhostY
			face := ColorOf(ghost.Shape)
			c := color.NRGBA{face.R, face.G, face.B, 0x80}
			for x, y := range ghost.Cells() {
				if y < 0 {
					continue
				}
				vector.StrokeRect(dst, float32(x*l.CellSize)+1, float32(y*l.CellSize)+1,
					float32(l.CellSize)-2, float32(l.CellSize)-2, 1, c, false)
			}
		}

		for x, y := range snap.Active.Cells() {
			if y < 0 {
				continue
			}
			s.drawBlock(dst, float32(x*l.CellSize), float32(y*l.CellSize), snap.Active.Shape)
		}
	}

	s.drawPanel(dst, snap)

	switch snap.State {
	case tetris.Paused:
		s.drawOverlay(dst, "PAUSED", "P to resume")
	case tetris.GameOver:
		s.drawOverlay(dst, "GAME OVER", "R to restart")
	}
}

// drawBlock paints one shaded cell with its top-left corner at (px, py).
func (s *Screen) drawBlock(dst *ebiten.Image, px, py float32, shape tetris.ShapeID) {
	size := float32(s.Layout.CellSize)
	edge := s.Layout.EdgeWidth()
	bevel := BevelOf(shape)

	vector.DrawFilledRect(dst, px, py, size, size, bevel.Face, false)

	vector.DrawFilledRect(dst, px, py, size, edge, bevel.Light, false)
	vector.DrawFilledRect(dst, px, py, edge, size, bevel.Light, false)

	vector.DrawFilledRect(dst, px, py+size-edge, size, edge, bevel.Shadow, false)
	vector.DrawFilledRect(dst, px+size-edge, py, edge, size, bevel.Shadow, false)

	vector.StrokeRect(dst, px, py, size, size, 1, bevel.Border, false)
}

func (s *Screen) drawPanel(dst *ebiten.Image, snap tetris.Snapshot) {
	l := s.Layout
	o := l.PanelOrigin()

	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("SCORE %d", snap.Score), o.X, o.Y)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("LEVEL %d", snap.Level), o.X, o.Y+16)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("LINES %d", snap.Lines), o.X, o.Y+32)

	box := l.PreviewBox()
	ebitenutil.DebugPrintAt(dst, "NEXT", box.Min.X, box.Min.Y-16)
	vector.StrokeRect(dst, float32(box.Min.X), float32(box.Min.Y),
		float32(box.Dx()), float32(box.Dy()), 1, gridColor, false)

	next := snap.Next.Matrix
	offset := PreviewOffset(next.Size(), PreviewCells)
	for row, col := range next.Cells() {
		px := float32(box.Min.X) + float32((offset+float64(col))*float64(l.CellSize))
		py := float32(box.Min.Y) + float32((offset+float64(row))*float64(l.CellSize))
		s.drawBlock(dst, px, py, snap.Next.Shape)
	}

	help := []string{"<- -> move", "UP rotate", "DOWN drop", "SPACE hard drop", "P pause", "R restart"}
	for i, line := range help {
		ebitenutil.DebugPrintAt(dst, line, o.X, box.Max.Y+16+i*16)
	}
}

func (s *Screen) drawOverlay(dst *ebiten.Image, title, hint string) {
	l := s.Layout
	vector.DrawFilledRect(dst, 0, 0, float32(l.BoardWidth()), float32(l.BoardHeight()), overlayColor, false)

	cx := l.BoardWidth() / 2
	cy := l.BoardHeight() / 2
	ebitenutil.DebugPrintAt(dst, title, cx-len(title)*3, cy-16)
	ebitenutil.DebugPrintAt(dst, hint, cx-len(hint)*3, cy)
}
