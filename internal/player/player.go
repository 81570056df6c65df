// Package player drives the engine one turn at a time for a single side.
package player

import (
	"time"

	"go.uber.org/zap"

	"othello_go/internal/book"
	"othello_go/internal/game"
)

// Player keeps its own copy of the game and answers each opponent move.
type Player struct {
	side     game.Side
	board    game.Board
	searcher *game.Searcher
	policy   DepthPolicy
	book     *book.Book
	history  []*game.Move // non-pass moves of both sides, in order
	offBook  bool
	log      *zap.SugaredLogger
}

// New returns a player for side at the opening position. A nil policy
// derives a TimeBudget from the searcher's config; bk and log may be nil.
func New(side game.Side, searcher *game.Searcher, policy DepthPolicy, bk *book.Book, log *zap.SugaredLogger) *Player {
	if policy == nil {
		policy = TimeBudget{Cfg: searcher.Config()}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Player{
		side:     side,
		board:    game.NewBoard(),
		searcher: searcher,
		policy:   policy,
		book:     bk,
		log:      log,
	}
}

func (p *Player) Side() game.Side { return p.side }

func (p *Player) Board() game.Board { return p.board }

// History returns the non-pass moves played so far.
func (p *Player) History() []*game.Move {
	out := make([]*game.Move, len(p.history))
	for i, m := range p.history {
		out[i] = m.Copy()
	}
	return out
}

// SetBoard replaces the position. The book is not consulted afterwards
// because the move history no longer describes the board.
func (p *Player) SetBoard(b game.Board) {
	p.board = b
	p.history = nil
	p.offBook = true
}

// TakeTurn applies opponentsMove (nil for a pass) and returns this side's
// reply, or nil to pass. msLeft == -1 always passes. The returned move is
// legal on the board it was chosen for and is already applied.
func (p *Player) TakeTurn(opponentsMove *game.Move, msLeft int) *game.Move {
	if opponentsMove != nil {
		mv := opponentsMove.Copy()
		if game.IsLegal(p.board, mv, p.side.Opponent()) {
			game.Apply(&p.board, mv, p.side.Opponent())
			p.history = append(p.history, mv)
		} else {
			p.log.Warnw("ignoring illegal opponent move", "move", mv.String())
		}
	}

	if msLeft == -1 || !game.HasLegalMove(p.board, p.side) {
		return nil
	}

	if m := p.bookMove(); m != nil {
		p.play(m)
		p.log.Debugw("book move", "side", p.side.String(), "move", m.String())
		return m.Copy()
	}

	start := time.Now()
	depth := p.policy.Depth(p.board, msLeft)
	p.searcher.ResetStats()
	m, score, ok := p.searcher.FindBestMoveAtDepth(p.board, p.side, depth)
	if !ok {
		return nil
	}
	p.play(m)

	st := p.searcher.Stats()
	p.log.Debugw("searched move",
		"side", p.side.String(),
		"move", m.String(),
		"depth", depth,
		"score", score,
		"nodes", st.Nodes,
		"cutoffs", st.Cutoffs,
		"elapsed_ms", time.Since(start).Milliseconds(),
		"ms_left", msLeft,
	)
	return m.Copy()
}

func (p *Player) bookMove() *game.Move {
	if p.offBook || p.book == nil {
		return nil
	}
	for _, m := range p.book.Next(p.history) {
		if game.IsLegal(p.board, m, p.side) {
			return m
		}
	}
	p.offBook = true
	return nil
}

func (p *Player) play(m *game.Move) {
	game.Apply(&p.board, m, p.side)
	p.history = append(p.history, m)
}
