// 文件：game/state_test.go
package game

import (
	"strings"
	"testing"
)

func TestGreedyGamePlaysToEnd(t *testing.T) {
	gs := NewGameState()
	for turns := 0; !gs.GameOver; turns++ {
		if turns > 64*2 {
			t.Fatalf("game did not finish")
		}
		m, ok := GreedyMove(gs.Board, gs.Current)
		if !ok {
			t.Fatalf("side to move has no move but the game is not over:\n%s", gs.Board)
		}
		if _, err := gs.MakeMove(m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !IsTerminal(gs.Board) {
		t.Fatalf("expected terminal board at game over")
	}
	black, white := gs.GetScores()
	switch w, ok := gs.Winner(); {
	case black > white && (!ok || w != Black):
		t.Fatalf("expected black to win %d-%d", black, white)
	case white > black && (!ok || w != White):
		t.Fatalf("expected white to win %d-%d", white, black)
	case black == white && (ok || gs.Result != Draw):
		t.Fatalf("expected a draw")
	}
	if _, err := gs.MakeMove(NewMove(0, 0)); err == nil {
		t.Fatalf("expected an error after game over")
	}
}

func TestMakeMoveRejectsIllegal(t *testing.T) {
	gs := NewGameState()
	if _, err := gs.MakeMove(NewMove(0, 0)); err == nil {
		t.Fatalf("expected illegal move error")
	}
	if _, err := gs.MakeMove(nil); err == nil {
		t.Fatalf("expected pass to be rejected while moves exist")
	}
	n, err := gs.MakeMove(NewMove(2, 3))
	if err != nil || n != 1 {
		t.Fatalf("expected one flip, got %d (%v)", n, err)
	}
	if gs.Current != White || len(gs.History) != 1 {
		t.Fatalf("expected white to move after one ply, got %v with history %v", gs.Current, gs.History)
	}
}

func TestMakeMoveForcedPass(t *testing.T) {
	// after c1 white has no move, black still has f8
	grid := []byte(strings.Repeat(".", 64))
	grid[0] = 'b'  // a1
	grid[1] = 'w'  // b1
	grid[63] = 'b' // h8
	grid[62] = 'w' // g8
	b, err := BoardFromGrid(string(grid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gs := &GameState{Board: b, Current: Black}

	if _, err := gs.MakeMove(NewMove(2, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gs.GameOver {
		t.Fatalf("expected game to continue")
	}
	if gs.Current != Black {
		t.Fatalf("expected white to pass back to black, got %v", gs.Current)
	}
	if last := gs.History[len(gs.History)-1]; last != nil {
		t.Fatalf("expected recorded pass, got %v", last)
	}

	if _, err := gs.MakeMove(NewMove(5, 7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gs.GameOver || gs.Result != BlackWins {
		t.Fatalf("expected black to win once white is wiped out, got %+v", gs.Result)
	}

	gs.Reset()
	if gs.Board != NewBoard() || gs.Current != Black || gs.GameOver {
		t.Fatalf("reset did not restore the opening")
	}
}

func TestTensorRoundTrip(t *testing.T) {
	for _, p := range randomPositions(13, 5) {
		tensor := EncodeBoardTensor(p.board, p.side)
		back, err := DecodeBoardTensor(tensor[:], p.side)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if back != p.board {
			t.Fatalf("tensor round trip changed board")
		}
		legal := 0
		for i := 2 * CellCount; i < TensorLen; i++ {
			if tensor[i] != 0 {
				legal++
			}
		}
		if legal != MoveCount(p.board, p.side) {
			t.Fatalf("expected %d legal cells in plane, got %d", MoveCount(p.board, p.side), legal)
		}
	}

	if _, err := DecodeBoardTensor(make([]float32, 10), Black); err != ErrBadTensor {
		t.Fatalf("expected ErrBadTensor, got %v", err)
	}
	bad := make([]float32, TensorLen)
	bad[0], bad[CellCount] = 1, 1
	if _, err := DecodeBoardTensor(bad, Black); err != ErrBadTensor {
		t.Fatalf("expected ErrBadTensor on overlapping planes, got %v", err)
	}
	if MoveIndex(nil) != -1 || MoveIndex(NewMove(1, 2)) != 17 {
		t.Fatalf("unexpected move index")
	}
}
