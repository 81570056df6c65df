// game/ai.go
package game

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// SearchConfig controls depth and root dispatch of a Searcher.
type SearchConfig struct {
	BaseDepth int
	MinDepth  int
	MaxDepth  int

	// PressureMs and RelaxedMs bound the per-move time estimate used by
	// adaptive depth policies: below PressureMs drop a ply, above RelaxedMs
	// add one.
	PressureMs int
	RelaxedMs  int

	// Parallel searches every root move in its own goroutine.
	Parallel bool

	// ExactTermination evaluates a ply immediately when neither side can
	// move, instead of letting passes consume the remaining depth.
	ExactTermination bool
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		BaseDepth:  5,
		MinDepth:   3,
		MaxDepth:   7,
		PressureMs: 250,
		RelaxedMs:  4000,
		Parallel:   true,
	}
}

// ClampDepth limits d to [MinDepth, MaxDepth], never below 1.
func (c SearchConfig) ClampDepth(d int) int {
	if c.MaxDepth > 0 && d > c.MaxDepth {
		d = c.MaxDepth
	}
	if d < c.MinDepth {
		d = c.MinDepth
	}
	if d < 1 {
		d = 1
	}
	return d
}

// Searcher runs depth-limited minimax with alpha-beta pruning.
type Searcher struct {
	eval  Evaluator
	cfg   SearchConfig
	stats Stats
}

func NewSearcher(eval Evaluator, cfg SearchConfig) *Searcher {
	return &Searcher{eval: eval, cfg: cfg}
}

func (s *Searcher) Config() SearchConfig { return s.cfg }

// Stats returns the counters accumulated since the last ResetStats.
func (s *Searcher) Stats() StatsSnapshot { return s.stats.Snapshot() }

func (s *Searcher) ResetStats() { s.stats.Reset() }

// ------------------------------------------------------------
// Root selection
// ------------------------------------------------------------

// FindBestMoveAtDepth searches every legal move of side to depth plies and
// returns the best one with its backed-up score. ok is false when side has
// no legal move. Ties go to the highest cell index.
func (s *Searcher) FindBestMoveAtDepth(b Board, side Side, depth int) (best *Move, score float64, ok bool) {
	return s.selectRoot(b, side, depth, s.cfg.Parallel, func(child *Board, c *counters) float64 {
		return s.alphaBeta(child, side, side.Opponent(), depth-1, math.Inf(-1), math.Inf(1), c)
	})
}

// Minimax is FindBestMoveAtDepth without pruning. It always runs
// sequentially and exists as a reference for the pruned search.
func (s *Searcher) Minimax(b Board, side Side, depth int) (best *Move, score float64, ok bool) {
	return s.selectRoot(b, side, depth, false, func(child *Board, c *counters) float64 {
		return s.minimax(child, side, side.Opponent(), depth-1, c)
	})
}

func (s *Searcher) selectRoot(
	b Board,
	side Side,
	depth int,
	parallel bool,
	search func(child *Board, c *counters) float64,
) (*Move, float64, bool) {
	moves := GenerateMoves(b, side)
	if len(moves) == 0 {
		return nil, 0, false
	}
	if depth < 1 {
		depth = 1
	}

	// scores are written by root index, so the pick below does not depend
	// on which task finishes first
	scores := make([]float64, len(moves))
	run := func(i int) {
		child := b
		Apply(&child, moves[i], side)
		var c counters
		c.nodes++
		scores[i] = search(&child, &c)
		s.stats.add(c)
	}

	if parallel && len(moves) > 1 {
		var g errgroup.Group
		for i := range moves {
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range moves {
			run(i)
		}
	}

	bestIdx := 0
	for i := 1; i < len(moves); i++ {
		if scores[i] >= scores[bestIdx] {
			bestIdx = i
		}
	}
	m := moves[bestIdx]
	return NewMove(m.X, m.Y), scores[bestIdx], true
}

// ------------------------------------------------------------
// α-β
// ------------------------------------------------------------

// alphaBeta scores b for root with toMove to play. b is mutated and
// restored; every Apply is paired with an Undo before the next sibling.
func (s *Searcher) alphaBeta(b *Board, root, toMove Side, depth int, alpha, beta float64, c *counters) float64 {
	c.nodes++
	if depth <= 0 {
		c.leaves++
		return s.eval.Score(*b, root)
	}

	maximizing := toMove == root
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}

	var flips [24]int
	played := false
	for i := 0; i < CellCount; i++ {
		x, y := i%BoardSize, i/BoardSize
		if !legalAt(*b, toMove, x, y) {
			continue
		}
		played = true

		m := Move{X: x, Y: y, Flipped: flips[:0]}
		Apply(b, &m, toMove)
		v := s.alphaBeta(b, root, toMove.Opponent(), depth-1, alpha, beta, c)
		Undo(b, &m)

		if maximizing {
			best = max(best, v)
			alpha = max(alpha, best)
		} else {
			best = min(best, v)
			beta = min(beta, best)
		}
		if beta < alpha {
			c.cutoffs++
			break
		}
	}

	if !played {
		return s.pass(b, root, toMove, depth, c, func() float64 {
			return s.alphaBeta(b, root, toMove.Opponent(), depth-1, alpha, beta, c)
		})
	}
	return best
}

func (s *Searcher) minimax(b *Board, root, toMove Side, depth int, c *counters) float64 {
	c.nodes++
	if depth <= 0 {
		c.leaves++
		return s.eval.Score(*b, root)
	}

	maximizing := toMove == root
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}

	played := false
	for i := 0; i < CellCount; i++ {
		x, y := i%BoardSize, i/BoardSize
		if !legalAt(*b, toMove, x, y) {
			continue
		}
		played = true

		m := Move{X: x, Y: y}
		Apply(b, &m, toMove)
		v := s.minimax(b, root, toMove.Opponent(), depth-1, c)
		Undo(b, &m)

		if maximizing {
			best = max(best, v)
		} else {
			best = min(best, v)
		}
	}

	if !played {
		return s.pass(b, root, toMove, depth, c, func() float64 {
			return s.minimax(b, root, toMove.Opponent(), depth-1, c)
		})
	}
	return best
}

// pass handles a ply where toMove has no legal move. By default the pass
// costs one ply of depth and play continues with the other side.
func (s *Searcher) pass(b *Board, root, toMove Side, depth int, c *counters, next func() float64) float64 {
	if s.cfg.ExactTermination && !HasLegalMove(*b, toMove.Opponent()) {
		c.leaves++
		return s.eval.Score(*b, root)
	}
	return next()
}

// DeepSearch scores b for side, with side to move, searching depth plies.
func (s *Searcher) DeepSearch(b Board, side Side, depth int) float64 {
	var c counters
	v := s.alphaBeta(&b, side, side, depth, math.Inf(-1), math.Inf(1), &c)
	s.stats.add(c)
	return v
}

// ------------------------------------------------------------
// Greedy
// ------------------------------------------------------------

// GreedyMove picks the move with the best immediate disc difference. The
// first of several equal moves wins.
func GreedyMove(b Board, side Side) (*Move, bool) {
	var best *Move
	bestDiff := 0
	for _, m := range GenerateMoves(b, side) {
		diff := Play(b, m, side).CountDiff(side)
		if best == nil || diff > bestDiff {
			best, bestDiff = m, diff
		}
	}
	if best == nil {
		return nil, false
	}
	return NewMove(best.X, best.Y), true
}
