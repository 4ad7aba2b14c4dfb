package tetris

import (
	"fmt"
	"iter"
	"strings"
)

// ShapeID identifies one of the seven piece types. The zero value marks an empty
// board cell, so a board cell is always either Empty or a valid ShapeID.
type ShapeID uint8

const (
	Empty ShapeID = iota
	ShapeI
	ShapeJ
	ShapeL
	ShapeO
	ShapeS
	ShapeT
	ShapeZ
)

// ShapeCount is the number of distinct piece types.
const ShapeCount = 7

var shapeNames = [...]string{".", "I", "J", "L", "O", "S", "T", "Z"}

// Valid reports whether s names one of the seven piece types.
func (s ShapeID) Valid() bool {
	return s >= ShapeI && s <= ShapeZ
}

func (s ShapeID) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("ShapeID(%d)", uint8(s))
}

// Matrix returns a fresh copy of the spawn orientation of s.
// It panics if s is not a valid shape.
func (s ShapeID) Matrix() Matrix {
	if !s.Valid() {
		panic("tetris: invalid shape id " + s.String())
	}
	return shapeTable[s].Clone()
}

// AllShapes yields every piece type in identifier order.
func AllShapes() iter.Seq[ShapeID] {
	return func(yield func(ShapeID) bool) {
		for s := ShapeI; s <= ShapeZ; s++ {
			if !yield(s) {
				return
			}
		}
	}
}

// Matrix is a square occupancy bitmap for a piece in one orientation.
type Matrix [][]bool

// shapeTable holds the spawn orientation of every shape. It is never mutated;
// pieces always work on clones.
var shapeTable = [...]Matrix{
	ShapeI: mustMatrix("....", "####", "....", "...."),
	ShapeJ: mustMatrix("#..", "###", "..."),
	ShapeL: mustMatrix("..#", "###", "..."),
	ShapeO: mustMatrix("##", "##"),
	ShapeS: mustMatrix(".##", "##.", "..."),
	ShapeT: mustMatrix(".#.", "###", "..."),
	ShapeZ: mustMatrix("##.", ".##", "..."),
}

// ParseMatrix builds a Matrix from rows of '#' (occupied) and '.' (free).
func ParseMatrix(rows ...string) (Matrix, error) {
	m := make(Matrix, len(rows))
	for i, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(rows))
		}
		m[i] = make([]bool, len(row))
		for j, c := range row {
			switch c {
			case '#':
				m[i][j] = true
			case '.':
			default:
				return nil, fmt.Errorf("row %d: unexpected cell %q", i, c)
			}
		}
	}
	return m, nil
}

func mustMatrix(rows ...string) Matrix {
	m, err := ParseMatrix(rows...)
	if err != nil {
		panic(err)
	}
	return m
}

// Size returns N for an N×N matrix.
func (m Matrix) Size() int {
	return len(m)
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i := range m {
		out[i] = make([]bool, len(m[i]))
		copy(out[i], m[i])
	}
	return out
}

// Equal reports whether both matrices have the same size and occupancy.
func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Cells yields the (row, col) of every occupied cell.
func (m Matrix) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for row := range m {
			for col, filled := range m[row] {
				if filled && !yield(row, col) {
					return
				}
			}
		}
	}
}

func (m Matrix) String() string {
	var sb strings.Builder
	for i, row := range m {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// RotateClockwise returns m turned a quarter turn clockwise, so that
// result[col][N-1-row] == m[row][col]. The input is left untouched.
func RotateClockwise(m Matrix) Matrix {
	size := len(m)
	rotated := make(Matrix, size)
	for i := range rotated {
		rotated[i] = make([]bool, size)
	}

	for row := range size {
		if len(m[row]) != size {
			panic("tetris: rotating a non-square matrix")
		}
		for col := range size {
			rotated[col][size-1-row] = m[row][col]
		}
	}

	return rotated
}
