package game

import (
	"strings"

	"github.com/samber/lo"
)

// Move is a disc placed on (X, Y). Flipped is the flip-log filled in by
// Apply and consumed by Undo on the same board. A nil *Move is a pass.
type Move struct {
	X, Y    int
	Flipped []int
}

// NewMove returns a move on (x, y) with an empty flip-log.
func NewMove(x, y int) *Move {
	return &Move{X: x, Y: y}
}

// MoveAt returns the move on cell index i.
func MoveAt(i int) *Move {
	return &Move{X: i % BoardSize, Y: i / BoardSize}
}

// Index returns the cell index x+8*y of the move.
func (m Move) Index() int { return index(m.X, m.Y) }

// Copy returns a move with its own copy of the flip-log.
func (m *Move) Copy() *Move {
	if m == nil {
		return nil
	}
	c := &Move{X: m.X, Y: m.Y}
	if len(m.Flipped) > 0 {
		c.Flipped = append([]int(nil), m.Flipped...)
	}
	return c
}

// SameCell reports whether two moves target the same cell. Two passes match.
func SameCell(a, b *Move) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.X == b.X && a.Y == b.Y
}

// directions are the 8 rays checked from a move cell.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// brackets reports whether the ray (dx, dy) from (x, y) crosses one or more
// opponent discs and ends on a disc of side.
func brackets(b Board, side Side, x, y, dx, dy int) bool {
	other := side.Opponent()
	cx, cy := x+dx, y+dy
	if !OnBoard(cx, cy) || !b.OwnedBy(other, cx, cy) {
		return false
	}
	for {
		cx += dx
		cy += dy
		if !OnBoard(cx, cy) || !b.OwnedBy(other, cx, cy) {
			break
		}
	}
	return OnBoard(cx, cy) && b.OwnedBy(side, cx, cy)
}

func legalAt(b Board, side Side, x, y int) bool {
	if !OnBoard(x, y) || b.Occupied(x, y) {
		return false
	}
	for _, d := range directions {
		if brackets(b, side, x, y, d[0], d[1]) {
			return true
		}
	}
	return false
}

// IsLegal reports whether side may play m. A pass is legal only when side
// has no other move.
func IsLegal(b Board, m *Move, side Side) bool {
	if m == nil {
		return !HasLegalMove(b, side)
	}
	return legalAt(b, side, m.X, m.Y)
}

// HasLegalMove reports whether side has any legal placement.
func HasLegalMove(b Board, side Side) bool {
	for i := 0; i < CellCount; i++ {
		if legalAt(b, side, i%BoardSize, i/BoardSize) {
			return true
		}
	}
	return false
}

// IsTerminal reports whether neither side can move.
func IsTerminal(b Board) bool {
	return !HasLegalMove(b, Black) && !HasLegalMove(b, White)
}

// LegalMask returns a bitmask of the cells side may play.
func LegalMask(b Board, side Side) uint64 {
	var mask uint64
	for i := 0; i < CellCount; i++ {
		if legalAt(b, side, i%BoardSize, i/BoardSize) {
			mask |= bit(i)
		}
	}
	return mask
}

// MoveCount returns the mobility of side.
func MoveCount(b Board, side Side) int {
	n := 0
	for i := 0; i < CellCount; i++ {
		if legalAt(b, side, i%BoardSize, i/BoardSize) {
			n++
		}
	}
	return n
}

// GenerateMoves enumerates the legal moves of side in ascending cell index.
func GenerateMoves(b Board, side Side) []*Move {
	var moves []*Move
	for i := 0; i < CellCount; i++ {
		if legalAt(b, side, i%BoardSize, i/BoardSize) {
			moves = append(moves, MoveAt(i))
		}
	}
	return moves
}

// ParseMove reads notation such as "d3": file a-h is X, rank 1-8 is Y.
func ParseMove(s string) (*Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return nil, ErrBadNotation
	}
	x := int(s[0] - 'a')
	y := int(s[1] - '1')
	if !OnBoard(x, y) {
		return nil, ErrBadNotation
	}
	return NewMove(x, y), nil
}

func (m Move) String() string {
	return string([]byte{byte('a' + m.X), byte('1' + m.Y)})
}

// FormatMoves joins moves in notation, writing "pass" for nil entries.
func FormatMoves(moves []*Move) string {
	return strings.Join(lo.Map(moves, func(m *Move, _ int) string {
		if m == nil {
			return "pass"
		}
		return m.String()
	}), " ")
}
