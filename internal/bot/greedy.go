package bot

import (
	"math"
	"slices"

	"github.com/plus3/blockfall/internal/input"
	"github.com/plus3/blockfall/tetris"
)

// Weights scores a board after a placement. Higher totals are better.
type Weights struct {
	AggregateHeight float64
	Lines           float64
	Holes           float64
	Bumpiness       float64
}

// DefaultWeights favour clearing lines and penalise tall, holey, uneven
// stacks.
var DefaultWeights = Weights{
	AggregateHeight: -0.51,
	Lines:           0.76,
	Holes:           -0.36,
	Bumpiness:       -0.18,
}

// GreedyBot tries every reachable rotation and column for the active piece
// and plays the placement with the best board score. It looks one piece
// ahead only; the preview piece does not influence the choice.
type GreedyBot struct {
	Weights Weights
}

func NewGreedyBot() *GreedyBot {
	return &GreedyBot{Weights: DefaultWeights}
}

type candidate struct {
	actions []input.Action
	score   float64
}

func (b *GreedyBot) Decide(s tetris.Snapshot) []input.Action {
	board := tetris.NewBoard(s.Rows, s.Cols)
	board.Fill(s.Board)

	best := candidate{score: math.Inf(-1)}
	consider := func(p tetris.Piece, moves []input.Action) {
		score := b.score(s, board, p)
		if score > best.score {
			best = candidate{actions: slices.Clone(moves), score: score}
		}
	}

	piece := s.Active
	var rotations []input.Action
	for turn := range 4 {
		if turn > 0 {
			next, ok := board.Rotate(piece)
			if !ok {
				break
			}
			piece = next
			rotations = append(rotations, input.ActionRotate)
		}

		consider(piece, rotations)
		for _, dir := range [...]int{-1, 1} {
			step := input.ActionRight
			if dir < 0 {
				step = input.ActionLeft
			}

			p := piece
			moves := slices.Clone(rotations)
			for board.IsValidPlacement(p.X+dir, p.Y, p.Matrix) {
				p.X += dir
				moves = append(moves, step)
				consider(p, moves)
			}
		}
	}

	return append(best.actions, input.ActionHardDrop)
}

// toppedOut scores placements that would leave cells above the board.
const toppedOut = -1e9

// score evaluates the board left behind by hard dropping p.
func (b *GreedyBot) score(s tetris.Snapshot, board *tetris.Board, p tetris.Piece) float64 {
	p.Y = board.DropY(p)

	for _, y := range p.Cells() {
		if y < 0 {
			return toppedOut
		}
	}

	sim := tetris.NewBoard(s.Rows, s.Cols)
	sim.Fill(s.Board)
	sim.Lock(p)
	lines := sim.RemoveFullRows()

	m := Measure(sim.Snapshot())
	w := b.Weights
	return w.AggregateHeight*float64(m.AggregateHeight) +
		w.Lines*float64(lines) +
		w.Holes*float64(m.Holes) +
		w.Bumpiness*float64(m.Bumpiness)
}

// Metrics describe the shape of a stack.
type Metrics struct {
	Heights         []int
	AggregateHeight int
	Holes           int
	Bumpiness       int
}

// Measure computes column heights, covered empty cells and the sum of height
// differences between neighbouring columns.
func Measure(grid [][]tetris.ShapeID) Metrics {
	if len(grid) == 0 {
		return Metrics{}
	}
	rows, cols := len(grid), len(grid[0])
	m := Metrics{Heights: make([]int, cols)}

	for x := range cols {
		covered := false
		for y := range rows {
			if grid[y][x] != tetris.Empty {
				if !covered {
					m.Heights[x] = rows - y
					covered = true
				}
			} else if covered {
				m.Holes++
			}
		}
		m.AggregateHeight += m.Heights[x]
		if x > 0 {
			d := m.Heights[x] - m.Heights[x-1]
			if d < 0 {
				d = -d
			}
			m.Bumpiness += d
		}
	}
	return m
}
