package tetris

import "iter"

// Piece is a shape with its own orientation matrix anchored at the top-left
// corner (X, Y) of that matrix in board coordinates.
type Piece struct {
	Shape  ShapeID `json:"shape"`
	Matrix Matrix  `json:"matrix"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
}

// Spawn places a new piece of the given shape on row 0, horizontally centred
// on a board with cols columns.
func Spawn(shape ShapeID, cols int) Piece {
	m := shape.Matrix()
	return Piece{
		Shape:  shape,
		Matrix: m,
		X:      cols/2 - m.Size()/2,
		Y:      0,
	}
}

// Clone returns a copy of p that shares no memory with it.
func (p Piece) Clone() Piece {
	p.Matrix = p.Matrix.Clone()
	return p
}

// Cells yields the board (x, y) of every occupied cell.
func (p Piece) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for row, col := range p.Matrix.Cells() {
			if !yield(p.X+col, p.Y+row) {
				return
			}
		}
	}
}
