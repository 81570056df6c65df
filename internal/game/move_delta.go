package game

// Apply plays m for side on b and records every flipped cell in m.Flipped,
// in the order visited. A pass or an illegal move leaves b untouched and
// an illegal move gets an empty flip-log.
func Apply(b *Board, m *Move, side Side) {
	if m == nil {
		return
	}
	m.Flipped = m.Flipped[:0]
	if !legalAt(*b, side, m.X, m.Y) {
		return
	}
	other := side.Opponent()
	for _, d := range directions {
		if !brackets(*b, side, m.X, m.Y, d[0], d[1]) {
			continue
		}
		cx, cy := m.X+d[0], m.Y+d[1]
		for OnBoard(cx, cy) && b.OwnedBy(other, cx, cy) {
			i := index(cx, cy)
			b.setIndex(side, i)
			m.Flipped = append(m.Flipped, i)
			cx += d[0]
			cy += d[1]
		}
	}
	b.Set(side, m.X, m.Y)
}

// Undo reverses the latest Apply of m on b. Undoing a pass, or a move
// Apply rejected, is a no-op: a legal move always flips at least one disc.
func Undo(b *Board, m *Move) {
	if m == nil || len(m.Flipped) == 0 {
		return
	}
	b.clearIndex(m.Index())
	for _, i := range m.Flipped {
		b.flipIndex(i)
	}
	m.Flipped = m.Flipped[:0]
}

// Play returns a copy of b with m applied for side.
func Play(b Board, m *Move, side Side) Board {
	Apply(&b, m, side)
	return b
}
