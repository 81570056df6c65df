// file: internal/game/evaluate.go
package game

import "math"

// PositionTable assigns a static value to each cell, indexed x+8*y.
type PositionTable [CellCount]int

// DefaultPositionTable favours corners and edges and penalizes the cells
// next to corners.
var DefaultPositionTable = PositionTable{
	20, -3, 11, 8, 8, 11, -3, 20,
	-3, -7, -4, 1, 1, -4, -7, -3,
	11, -4, 2, 2, 2, 2, -4, 11,
	8, 1, 2, -3, -3, 2, 1, 8,
	8, 1, 2, -3, -3, 2, 1, 8,
	11, -4, 2, 2, 2, 2, -4, 11,
	-3, -7, -4, 1, 1, -4, -7, -3,
	20, -3, 11, 8, 8, 11, -3, 20,
}

// cornerNeighbourCells is the number of cells next to the four corners.
const cornerNeighbourCells = 12

var (
	corners = [4]int{0, 7, 56, 63}
	// cornerNeighbours[i] are the three cells touching corners[i].
	cornerNeighbours = [4][3]int{{1, 8, 9}, {6, 14, 15}, {48, 49, 57}, {54, 55, 62}}
)

// Evaluator scores a position from one side's point of view.
type Evaluator interface {
	Score(b Board, side Side) float64
}

// Weights scales each term of WeightedEvaluator.
type Weights struct {
	Piece      float64
	Mobility   float64
	Positional float64
	Corner     float64
	Closeness  float64
}

// DefaultWeights keeps corner ownership ten times mobility, with every
// other term well below the corner weight.
func DefaultWeights() Weights {
	return Weights{
		Piece:      10,
		Mobility:   80,
		Positional: 40,
		Corner:     800,
		Closeness:  100,
	}
}

// Terms is the unweighted breakdown of a WeightedEvaluator score.
// Every term lies in [-1, 1]. Closeness is the opponent's corner-adjacent
// disc count minus the side's own, over the 12 cells next to the corners.
type Terms struct {
	Piece      float64
	Mobility   float64
	Positional float64
	Corner     float64
	Closeness  float64
}

// WeightedEvaluator combines piece, mobility, positional, corner and
// corner-closeness differentials.
type WeightedEvaluator struct {
	table   PositionTable
	weights Weights
}

func NewWeightedEvaluator(table PositionTable, w Weights) *WeightedEvaluator {
	return &WeightedEvaluator{table: table, weights: w}
}

// DefaultEvaluator returns a WeightedEvaluator with the default table and weights.
func DefaultEvaluator() *WeightedEvaluator {
	return NewWeightedEvaluator(DefaultPositionTable, DefaultWeights())
}

func (e *WeightedEvaluator) Weights() Weights { return e.weights }

// ratio is (own-opp)/(own+opp), or 0 when both are 0.
func ratio(own, opp float64) float64 {
	if own+opp == 0 {
		return 0
	}
	return (own - opp) / (own + opp)
}

// Terms computes every differential for side.
func (e *WeightedEvaluator) Terms(b Board, side Side) Terms {
	opp := side.Opponent()
	var t Terms

	t.Piece = ratio(float64(b.Count(side)), float64(b.Count(opp)))
	t.Mobility = ratio(float64(MoveCount(b, side)), float64(MoveCount(b, opp)))

	own, his := b.Planes(side)
	var ownPos, oppPos float64
	for i := 0; i < CellCount; i++ {
		m := bit(i)
		if own&m != 0 {
			ownPos += float64(e.table[i])
		} else if his&m != 0 {
			oppPos += float64(e.table[i])
		}
	}
	// table values can be negative, so normalize by magnitude
	if mag := math.Abs(ownPos) + math.Abs(oppPos); mag != 0 {
		t.Positional = (ownPos - oppPos) / mag
	}

	var ownCorners, oppCorners, ownClose, oppClose float64
	for ci, c := range corners {
		m := bit(c)
		switch {
		case own&m != 0:
			ownCorners++
		case his&m != 0:
			oppCorners++
		default:
			for _, n := range cornerNeighbours[ci] {
				if own&bit(n) != 0 {
					ownClose++
				} else if his&bit(n) != 0 {
					oppClose++
				}
			}
		}
	}
	t.Corner = ratio(ownCorners, oppCorners)
	t.Closeness = (oppClose - ownClose) / cornerNeighbourCells
	return t
}

// Score implements Evaluator.
func (e *WeightedEvaluator) Score(b Board, side Side) float64 {
	t := e.Terms(b, side)
	w := e.weights
	return w.Piece*t.Piece +
		w.Mobility*t.Mobility +
		w.Positional*t.Positional +
		w.Corner*t.Corner +
		w.Closeness*t.Closeness
}

// ------------------------------------------------------------
// Frontier evaluator
// ------------------------------------------------------------

// FrontierEvaluator scores from Black's point of view with disc share,
// corners, corner closeness, mobility, frontier discs and the static table,
// then flips the sign for White.
type FrontierEvaluator struct {
	table PositionTable
}

func NewFrontierEvaluator(table PositionTable) *FrontierEvaluator {
	return &FrontierEvaluator{table: table}
}

// share is +100*a/(a+b) when a leads, -100*b/(a+b) when b leads, else 0.
func share(a, b int) float64 {
	switch {
	case a > b:
		return 100 * float64(a) / float64(a+b)
	case a < b:
		return -100 * float64(b) / float64(a+b)
	}
	return 0
}

func (e *FrontierEvaluator) blackScore(b Board) float64 {
	blacks, whites := b.Planes(Black)

	var state float64
	var blackFront, whiteFront int
	for i := 0; i < CellCount; i++ {
		m := bit(i)
		if b.occupied&m == 0 {
			continue
		}
		if blacks&m != 0 {
			state += float64(e.table[i])
		} else {
			state -= float64(e.table[i])
		}
		if touchesEmpty(b, i%BoardSize, i/BoardSize) {
			if blacks&m != 0 {
				blackFront++
			} else {
				whiteFront++
			}
		}
	}

	diff := share(b.Count(Black), b.Count(White))
	// frontier discs are a liability
	frontiers := -share(blackFront, whiteFront)

	var bc, wc, bClose, wClose int
	for ci, c := range corners {
		m := bit(c)
		switch {
		case blacks&m != 0:
			bc++
		case whites&m != 0:
			wc++
		default:
			for _, n := range cornerNeighbours[ci] {
				if blacks&bit(n) != 0 {
					bClose++
				} else if whites&bit(n) != 0 {
					wClose++
				}
			}
		}
	}
	cornerScore := 25 * float64(bc-wc)
	closeness := -12.5 * float64(bClose-wClose)
	mobility := share(MoveCount(b, Black), MoveCount(b, White))

	return 10*diff +
		801.724*cornerScore +
		382.026*closeness +
		78.922*mobility +
		74.396*frontiers +
		10*state
}

func touchesEmpty(b Board, x, y int) bool {
	for _, d := range directions {
		nx, ny := x+d[0], y+d[1]
		if OnBoard(nx, ny) && !b.Occupied(nx, ny) {
			return true
		}
	}
	return false
}

// Score implements Evaluator.
func (e *FrontierEvaluator) Score(b Board, side Side) float64 {
	s := e.blackScore(b)
	if side == White {
		return -s
	}
	return s
}

// DiscEvaluator scores by raw disc difference.
type DiscEvaluator struct{}

func (DiscEvaluator) Score(b Board, side Side) float64 {
	return float64(b.CountDiff(side))
}
