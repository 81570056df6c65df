package game

import (
	"math/bits"
	"strings"
)

// BoardSize is the edge length of the Othello board.
const BoardSize = 8

// CellCount is the number of cells on the board.
const CellCount = BoardSize * BoardSize

// Side is the colour of a player.
type Side int

const (
	White Side = iota
	Black
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Black {
		return White
	}
	return Black
}

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

// Board is a two-plane bitboard. Bit i of each plane is cell x+8*y.
// The black plane is only meaningful where the occupied plane is set.
// Board is a plain value: assigning it copies the whole position.
type Board struct {
	occupied uint64
	black    uint64
}

// NewBoard returns the standard opening position.
func NewBoard() Board {
	var b Board
	b.Set(White, 3, 3)
	b.Set(White, 4, 4)
	b.Set(Black, 4, 3)
	b.Set(Black, 3, 4)
	return b
}

func index(x, y int) int { return x + BoardSize*y }

func bit(i int) uint64 { return uint64(1) << uint(i) }

// OnBoard reports whether (x, y) is inside the board.
func OnBoard(x, y int) bool {
	return 0 <= x && x < BoardSize && 0 <= y && y < BoardSize
}

// Occupied reports whether (x, y) holds a disc of either colour.
func (b Board) Occupied(x, y int) bool {
	return b.occupied&bit(index(x, y)) != 0
}

// OwnedBy reports whether (x, y) holds a disc of the given side.
func (b Board) OwnedBy(side Side, x, y int) bool {
	i := bit(index(x, y))
	if b.occupied&i == 0 {
		return false
	}
	return (b.black&i != 0) == (side == Black)
}

// Set places a disc of side on (x, y), overwriting whatever was there.
func (b *Board) Set(side Side, x, y int) {
	b.setIndex(side, index(x, y))
}

func (b *Board) setIndex(side Side, i int) {
	m := bit(i)
	b.occupied |= m
	if side == Black {
		b.black |= m
	} else {
		b.black &^= m
	}
}

func (b *Board) clearIndex(i int) {
	m := bit(i)
	b.occupied &^= m
	b.black &^= m
}

func (b *Board) flipIndex(i int) {
	b.black ^= bit(i)
}

// Count returns the number of discs owned by side.
func (b Board) Count(side Side) int {
	if side == Black {
		return bits.OnesCount64(b.black & b.occupied)
	}
	return bits.OnesCount64(b.occupied &^ b.black)
}

// CountDiff returns Count(side) - Count(side.Opponent()).
func (b Board) CountDiff(side Side) int {
	return b.Count(side) - b.Count(side.Opponent())
}

// Empties returns the number of empty cells.
func (b Board) Empties() int {
	return CellCount - bits.OnesCount64(b.occupied)
}

// Planes returns the side's disc mask and the opponent's disc mask.
func (b Board) Planes(side Side) (own, opp uint64) {
	blacks := b.black & b.occupied
	whites := b.occupied &^ b.black
	if side == Black {
		return blacks, whites
	}
	return whites, blacks
}

// BoardFromGrid builds a board from 64 characters in x+8*y order:
// 'b' is black, 'w' is white and anything else is empty.
func BoardFromGrid(grid string) (Board, error) {
	var b Board
	if len(grid) != CellCount {
		return b, ErrBadGrid
	}
	for i := 0; i < CellCount; i++ {
		switch grid[i] {
		case 'b':
			b.setIndex(Black, i)
		case 'w':
			b.setIndex(White, i)
		}
	}
	return b, nil
}

// Grid is the inverse of BoardFromGrid, using '.' for empty cells.
func (b Board) Grid() string {
	var sb strings.Builder
	sb.Grow(CellCount)
	for i := 0; i < CellCount; i++ {
		m := bit(i)
		switch {
		case b.occupied&m == 0:
			sb.WriteByte('.')
		case b.black&m != 0:
			sb.WriteByte('b')
		default:
			sb.WriteByte('w')
		}
	}
	return sb.String()
}

// String renders the board with file letters and rank numbers.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for y := 0; y < BoardSize; y++ {
		sb.WriteByte(byte('1' + y))
		for x := 0; x < BoardSize; x++ {
			sb.WriteByte(' ')
			switch {
			case b.OwnedBy(Black, x, y):
				sb.WriteByte('b')
			case b.OwnedBy(White, x, y):
				sb.WriteByte('w')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
