package nnue

import (
	"fmt"

	"othello_go/internal/game"
)

// Scale maps the net's (-1, 1) output onto the range of the hand-tuned
// evaluators.
const Scale = 1000

// Evaluator scores a board as the net's value for side minus its value for
// the opponent, which keeps scores antisymmetric.
type Evaluator struct {
	net *Net
}

func NewEvaluator(net *Net) (*Evaluator, error) {
	if net.InDim() != game.TensorLen {
		return nil, fmt.Errorf("%w: input size %d, want %d", ErrBadHeader, net.InDim(), game.TensorLen)
	}
	return &Evaluator{net: net}, nil
}

func (e *Evaluator) Score(b game.Board, side game.Side) float64 {
	own := game.EncodeBoardTensor(b, side)
	opp := game.EncodeBoardTensor(b, side.Opponent())
	return Scale * (float64(e.net.Eval(own[:])) - float64(e.net.Eval(opp[:])))
}
