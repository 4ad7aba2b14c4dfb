package render

import "image"

// PreviewCells is the side length, in cells, of the next-piece preview box.
const PreviewCells = 4

// panelCells is the width of the side panel in cells.
const panelCells = 6

// Layout computes pixel geometry for a board of Rows×Cols cells drawn at
// CellSize pixels, with a status panel to its right.
type Layout struct {
	Rows     int
	Cols     int
	CellSize int
}

func (l Layout) BoardWidth() int  { return l.Cols * l.CellSize }
func (l Layout) BoardHeight() int { return l.Rows * l.CellSize }

// Width is the full window width including the side panel.
func (l Layout) Width() int  { return l.BoardWidth() + panelCells*l.CellSize }
func (l Layout) Height() int { return l.BoardHeight() }

// Cell returns the pixel rectangle of board cell (x, y).
func (l Layout) Cell(x, y int) image.Rectangle {
	return image.Rect(x*l.CellSize, y*l.CellSize, (x+1)*l.CellSize, (y+1)*l.CellSize)
}

// EdgeWidth is the thickness of the bevel strips drawn on each block.
func (l Layout) EdgeWidth() float32 {
	return float32(l.CellSize) / 10
}

// PanelOrigin is the top-left pixel of the side panel.
func (l Layout) PanelOrigin() image.Point {
	return image.Pt(l.BoardWidth()+l.CellSize/2, l.CellSize/2)
}

// PreviewBox is the pixel rectangle of the next-piece preview, placed below
// the panel text.
func (l Layout) PreviewBox() image.Rectangle {
	o := l.PanelOrigin()
	top := o.Y + 5*l.CellSize/2
	return image.Rect(o.X, top, o.X+PreviewCells*l.CellSize, top+PreviewCells*l.CellSize)
}

// PreviewOffset returns the offset, in cells, that centers a piece of the
// given matrix size inside a box of boxCells cells. The result can be
// fractional.
func PreviewOffset(size, boxCells int) float64 {
	return float64(boxCells-size) / 2
}
