package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, rows ...string) tetris.Matrix {
	t.Helper()
	m, err := tetris.ParseMatrix(rows...)
	require.NoError(t, err)
	return m
}

func TestRotateClockwise(t *testing.T) {
	rotated := tetris.RotateClockwise(tetris.ShapeJ.Matrix())
	assert.Equal(t, mustParse(t, ".##", ".#.", ".#."), rotated)
}

func TestRotateClockwiseIsPure(t *testing.T) {
	original := tetris.ShapeT.Matrix()
	before := original.Clone()

	tetris.RotateClockwise(original)

	assert.True(t, before.Equal(original))
}

func TestRotateO(t *testing.T) {
	o := tetris.ShapeO.Matrix()

	once := tetris.RotateClockwise(o)
	twice := tetris.RotateClockwise(once)

	assert.True(t, o.Equal(once))
	assert.True(t, o.Equal(twice))
}

func TestRotateIFourCycle(t *testing.T) {
	i := tetris.ShapeI.Matrix()

	m := i
	for turn := 1; turn <= 4; turn++ {
		m = tetris.RotateClockwise(m)
		if turn < 4 {
			assert.False(t, i.Equal(m), "turn %d", turn)
		}
	}
	assert.True(t, i.Equal(m))
	assert.Equal(t, "..#.\n..#.\n..#.\n..#.", tetris.RotateClockwise(i).String())
}

func TestRotateNonSquarePanics(t *testing.T) {
	assert.Panics(t, func() {
		tetris.RotateClockwise(tetris.Matrix{{true, true}})
	})
}

func TestShapeMatrixIsACopy(t *testing.T) {
	m := tetris.ShapeL.Matrix()
	m[0][0] = true

	assert.False(t, tetris.ShapeL.Matrix()[0][0])
}

func TestShapeMatrices(t *testing.T) {
	tests := []struct {
		shape tetris.ShapeID
		want  string
	}{
		{tetris.ShapeI, "....\n####\n....\n...."},
		{tetris.ShapeJ, "#..\n###\n..."},
		{tetris.ShapeL, "..#\n###\n..."},
		{tetris.ShapeO, "##\n##"},
		{tetris.ShapeS, ".##\n##.\n..."},
		{tetris.ShapeT, ".#.\n###\n..."},
		{tetris.ShapeZ, "##.\n.##\n..."},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			m := tt.shape.Matrix()
			assert.Equal(t, tt.want, m.String())

			cells := 0
			for range m.Cells() {
				cells++
			}
			assert.Equal(t, 4, cells)
		})
	}
}

func TestInvalidShape(t *testing.T) {
	assert.False(t, tetris.Empty.Valid())
	assert.False(t, tetris.ShapeID(8).Valid())
	assert.Equal(t, "ShapeID(8)", tetris.ShapeID(8).String())

	assert.Panics(t, func() { tetris.Empty.Matrix() })
	assert.Panics(t, func() { tetris.ShapeID(42).Matrix() })
}

func TestAllShapes(t *testing.T) {
	var shapes []tetris.ShapeID
	for s := range tetris.AllShapes() {
		shapes = append(shapes, s)
	}
	assert.Len(t, shapes, tetris.ShapeCount)
	assert.Equal(t, tetris.ShapeI, shapes[0])
	assert.Equal(t, tetris.ShapeZ, shapes[len(shapes)-1])
}

func TestParseMatrixErrors(t *testing.T) {
	_, err := tetris.ParseMatrix("##", "#")
	assert.Error(t, err)

	_, err = tetris.ParseMatrix("#x", "..")
	assert.Error(t, err)
}
