// internal/game/encode.go
package game

const (
	PlaneCnt  = 3 // [mine, theirs, legal for me]
	TensorLen = PlaneCnt * CellCount
)

// EncodeBoardTensor encodes b from me's point of view.
func EncodeBoardTensor(b Board, me Side) [TensorLen]float32 {
	var t [TensorLen]float32
	own, opp := b.Planes(me)
	legal := LegalMask(b, me)
	for i := 0; i < CellCount; i++ {
		m := bit(i)
		if own&m != 0 {
			t[i] = 1
		}
		if opp&m != 0 {
			t[CellCount+i] = 1
		}
		if legal&m != 0 {
			t[2*CellCount+i] = 1
		}
	}
	return t
}

// DecodeBoardTensor rebuilds the board from the first two planes of t.
// The legal plane is ignored.
func DecodeBoardTensor(t []float32, me Side) (Board, error) {
	var b Board
	if len(t) < 2*CellCount {
		return b, ErrBadTensor
	}
	for i := 0; i < CellCount; i++ {
		mine, theirs := t[i] != 0, t[CellCount+i] != 0
		switch {
		case mine && theirs:
			return Board{}, ErrBadTensor
		case mine:
			b.setIndex(me, i)
		case theirs:
			b.setIndex(me.Opponent(), i)
		}
	}
	return b, nil
}

// MoveIndex maps a move to 0..63, or -1 for a pass.
func MoveIndex(m *Move) int {
	if m == nil {
		return -1
	}
	return m.Index()
}
