package tetris

// Default playfield dimensions.
const (
	DefaultRows = 20
	DefaultCols = 10
)

// Board is the fixed-size playfield. Row 0 is the top, column 0 the left edge.
type Board struct {
	rows  int
	cols  int
	cells [][]ShapeID
}

// NewBoard allocates an empty rows×cols board.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic("tetris: board dimensions must be positive")
	}
	b := &Board{rows: rows, cols: cols, cells: make([][]ShapeID, rows)}
	for y := range b.cells {
		b.cells[y] = make([]ShapeID, cols)
	}
	return b
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// At returns the cell at column x, row y.
func (b *Board) At(x, y int) ShapeID {
	return b.cells[y][x]
}

// Reset empties every cell.
func (b *Board) Reset() {
	for _, row := range b.cells {
		clear(row)
	}
}

// IsValidPlacement reports whether matrix m anchored at (x, y) fits the board.
// Occupied cells must stay inside [0, cols) horizontally and above the floor,
// and must not overlap locked cells. Cells above the top edge (row < 0) are
// only checked horizontally, which lets pieces spawn partly out of view.
func (b *Board) IsValidPlacement(x, y int, m Matrix) bool {
	for row, col := range m.Cells() {
		bx := x + col
		by := y + row

		if bx < 0 || bx >= b.cols || by >= b.rows {
			return false
		}

		if by >= 0 && b.cells[by][bx] != Empty {
			return false
		}
	}
	return true
}

// kickOffsets are tried in order when a rotation does not fit in place.
var kickOffsets = [...]struct{ dx, dy int }{
	{0, 0},
	{1, 0},
	{-1, 0},
	{0, -1},
}

// Rotate returns p turned clockwise, shifted by the first kick offset that
// fits. ok is false when no offset fits; p itself is never modified.
func (b *Board) Rotate(p Piece) (Piece, bool) {
	rotated := RotateClockwise(p.Matrix)
	for _, kick := range kickOffsets {
		x, y := p.X+kick.dx, p.Y+kick.dy
		if b.IsValidPlacement(x, y, rotated) {
			return Piece{Shape: p.Shape, Matrix: rotated, X: x, Y: y}, true
		}
	}
	return p, false
}

// DropY returns the lowest row p can reach by falling straight down from its
// current position.
func (b *Board) DropY(p Piece) int {
	y := p.Y
	for b.IsValidPlacement(p.X, y+1, p.Matrix) {
		y++
	}
	return y
}

// Lock writes the occupied cells of p into the board using p.Shape as the
// cell value. Cells above the top edge are dropped.
func (b *Board) Lock(p Piece) {
	if !p.Shape.Valid() {
		panic("tetris: locking piece with invalid shape " + p.Shape.String())
	}
	for x, y := range p.Cells() {
		if y < 0 {
			continue
		}
		b.cells[y][x] = p.Shape
	}
}

// RemoveFullRows clears every full row and returns how many were removed.
// Rows are scanned bottom to top; after a removal everything above shifts
// down one row and the same index is examined again.
func (b *Board) RemoveFullRows() int {
	cleared := 0
	for y := b.rows - 1; y >= 0; {
		if !b.rowFull(y) {
			y--
			continue
		}

		removed := b.cells[y]
		copy(b.cells[1:y+1], b.cells[:y])
		clear(removed)
		b.cells[0] = removed
		cleared++
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for _, cell := range b.cells[y] {
		if cell == Empty {
			return false
		}
	}
	return true
}

func (b *Board) rowEmpty(y int) bool {
	for _, cell := range b.cells[y] {
		if cell != Empty {
			return false
		}
	}
	return true
}

// OccupiedRows counts rows holding at least one locked cell.
func (b *Board) OccupiedRows() int {
	n := 0
	for y := range b.cells {
		if !b.rowEmpty(y) {
			n++
		}
	}
	return n
}

// Height is the distance from the floor to the top of the highest locked cell.
func (b *Board) Height() int {
	for y := range b.cells {
		if !b.rowEmpty(y) {
			return b.rows - y
		}
	}
	return 0
}

// Snapshot returns a deep copy of the grid indexed [row][col].
func (b *Board) Snapshot() [][]ShapeID {
	out := make([][]ShapeID, b.rows)
	for y, row := range b.cells {
		out[y] = make([]ShapeID, b.cols)
		copy(out[y], row)
	}
	return out
}

// Fill overwrites cells from a snapshot-shaped grid. Rows or columns outside
// the board are ignored. Invalid cell values panic.
func (b *Board) Fill(grid [][]ShapeID) {
	for y := 0; y < len(grid) && y < b.rows; y++ {
		for x := 0; x < len(grid[y]) && x < b.cols; x++ {
			cell := grid[y][x]
			if cell != Empty && !cell.Valid() {
				panic("tetris: invalid cell value " + cell.String())
			}
			b.cells[y][x] = cell
		}
	}
}
