package game

import (
	"errors"
)

// Outcome of a finished game.
type Outcome int

const (
	InProgress Outcome = iota
	BlackWins
	WhiteWins
	Draw
)

// GameState tracks a whole game: board, side to move, history and result.
type GameState struct {
	Board    Board   // current position
	Current  Side    // side to move
	History  []*Move // moves in order; nil entries are passes
	GameOver bool
	Result   Outcome
}

var (
	errGameOver = errors.New("game is over")
	errIllegal  = errors.New("illegal move")
)

// NewGameState returns a game at the standard opening with Black to move.
func NewGameState() *GameState {
	return &GameState{
		Board:   NewBoard(),
		Current: Black,
	}
}

// MakeMove plays m for the side to move, records it, passes for the next
// side automatically when it has no move and detects the end of the game.
// It returns the number of flipped discs.
func (gs *GameState) MakeMove(m *Move) (int, error) {
	if gs.GameOver {
		return 0, errGameOver
	}
	if !IsLegal(gs.Board, m, gs.Current) {
		return 0, errIllegal
	}
	mv := m.Copy()
	Apply(&gs.Board, mv, gs.Current)
	gs.History = append(gs.History, mv)
	gs.Current = gs.Current.Opponent()

	gs.checkGameOver()
	if !gs.GameOver && !HasLegalMove(gs.Board, gs.Current) {
		// forced pass
		gs.History = append(gs.History, nil)
		gs.Current = gs.Current.Opponent()
	}
	if mv == nil {
		return 0, nil
	}
	return len(mv.Flipped), nil
}

// checkGameOver ends the game when neither side can move.
func (gs *GameState) checkGameOver() {
	if gs.GameOver || !IsTerminal(gs.Board) {
		return
	}
	gs.GameOver = true
	switch d := gs.Board.CountDiff(Black); {
	case d > 0:
		gs.Result = BlackWins
	case d < 0:
		gs.Result = WhiteWins
	default:
		gs.Result = Draw
	}
}

// GetScores returns the disc counts (black, white).
func (gs *GameState) GetScores() (int, int) {
	return gs.Board.Count(Black), gs.Board.Count(White)
}

// Winner returns the winning side; ok is false while the game runs or on a draw.
func (gs *GameState) Winner() (Side, bool) {
	switch gs.Result {
	case BlackWins:
		return Black, true
	case WhiteWins:
		return White, true
	}
	return White, false
}

// Reset restores the opening position.
func (gs *GameState) Reset() {
	*gs = *NewGameState()
}
