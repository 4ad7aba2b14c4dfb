package tetris

import "time"

const (
	// LinesPerLevel is how many cleared lines advance the level by one.
	LinesPerLevel = 10

	BaseDropInterval = 1000 * time.Millisecond
	MinDropInterval  = 100 * time.Millisecond
	dropIntervalStep = 100 * time.Millisecond
)

var lineClearPoints = [...]int{0, 100, 300, 500, 800}

// Points returns the score for clearing rows lines at once on the given level.
func Points(rows, level int) int {
	if rows < 0 || rows >= len(lineClearPoints) {
		panic("tetris: impossible line clear count")
	}
	return lineClearPoints[rows] * level
}

// LevelForLines returns the level reached after clearing lines lines in total.
func LevelForLines(lines int) int {
	return lines/LinesPerLevel + 1
}

// DropIntervalForLevel returns the automatic fall period for level.
func DropIntervalForLevel(level int) time.Duration {
	return max(MinDropInterval, BaseDropInterval-time.Duration(level-1)*dropIntervalStep)
}
