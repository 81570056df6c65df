package player

import "othello_go/internal/game"

// DepthPolicy picks the search depth for one turn.
type DepthPolicy interface {
	Depth(b game.Board, msLeft int) int
}

// FixedDepth always searches the same number of plies.
type FixedDepth int

func (d FixedDepth) Depth(game.Board, int) int {
	if d < 1 {
		return 1
	}
	return int(d)
}

// TimeBudget spreads msLeft over the moves this side still has to make
// and nudges the base depth by one ply when the share is tight or generous.
type TimeBudget struct {
	Cfg game.SearchConfig
}

func (p TimeBudget) Depth(b game.Board, msLeft int) int {
	d := p.Cfg.BaseDepth
	if msLeft <= 0 {
		return p.Cfg.ClampDepth(d)
	}
	remaining := (b.Empties() + 1) / 2
	if remaining < 1 {
		remaining = 1
	}
	perMove := msLeft / remaining
	switch {
	case perMove < p.Cfg.PressureMs:
		d--
	case p.Cfg.RelaxedMs > 0 && perMove > p.Cfg.RelaxedMs:
		d++
	}
	return p.Cfg.ClampDepth(d)
}
