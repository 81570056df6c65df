package player

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"othello_go/internal/book"
	"othello_go/internal/game"
)

func newTestPlayer(side game.Side, bk *book.Book) *Player {
	s := game.NewSearcher(game.DefaultEvaluator(), game.DefaultSearchConfig())
	return New(side, s, FixedDepth(2), bk, zap.NewNop().Sugar())
}

func TestOpeningMoveIsLegal(t *testing.T) {
	p := newTestPlayer(game.Black, nil)
	before := p.Board()
	m := p.TakeTurn(nil, 60000)
	if m == nil || !game.IsLegal(before, m, game.Black) {
		t.Fatalf("expected a legal opening move, got %v", m)
	}
	b := p.Board()
	if b.Count(game.Black) != 4 || b.Count(game.White) != 1 {
		t.Fatalf("expected the move applied to the player's board:\n%s", b)
	}
	if len(m.Flipped) != 1 {
		t.Fatalf("expected returned move to carry its flip-log, got %v", m.Flipped)
	}
}

func TestAppliesOpponentMove(t *testing.T) {
	p := newTestPlayer(game.White, nil)
	d3, _ := game.ParseMove("d3")
	m := p.TakeTurn(d3, 60000)

	after := game.Play(game.NewBoard(), game.NewMove(3, 2), game.Black)
	if m == nil || !game.IsLegal(after, m, game.White) {
		t.Fatalf("expected a legal reply to d3, got %v", m)
	}
	if got := len(p.History()); got != 2 {
		t.Fatalf("expected 2 moves in history, got %d", got)
	}
}

func TestNoTimePasses(t *testing.T) {
	p := newTestPlayer(game.Black, nil)
	if m := p.TakeTurn(nil, -1); m != nil {
		t.Fatalf("expected pass with msLeft -1, got %v", m)
	}
	if p.Board() != game.NewBoard() {
		t.Fatalf("expected board untouched")
	}
}

func TestNoLegalMovePasses(t *testing.T) {
	lone, _ := game.BoardFromGrid("b" + strings.Repeat(".", 63))
	for _, side := range []game.Side{game.Black, game.White} {
		p := newTestPlayer(side, nil)
		p.SetBoard(lone)
		if m := p.TakeTurn(nil, 60000); m != nil {
			t.Fatalf("expected pass on a terminal board, got %v", m)
		}
		if p.Board() != lone {
			t.Fatalf("expected terminal board untouched")
		}
	}
}

func TestIllegalOpponentMoveIgnored(t *testing.T) {
	p := newTestPlayer(game.White, nil)
	m := p.TakeTurn(game.NewMove(0, 0), 60000)
	if m == nil || !game.IsLegal(game.NewBoard(), m, game.White) {
		t.Fatalf("expected a legal white move from the opening, got %v", m)
	}
}

func TestBookMoves(t *testing.T) {
	bk, err := book.Load(strings.NewReader("f5d6c3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := newTestPlayer(game.Black, bk)
	if m := p.TakeTurn(nil, 60000); m == nil || m.String() != "f5" {
		t.Fatalf("expected book move f5, got %v", m)
	}
	d6, _ := game.ParseMove("d6")
	if m := p.TakeTurn(d6, 60000); m == nil || m.String() != "c3" {
		t.Fatalf("expected book move c3, got %v", m)
	}
	if got := game.FormatMoves(p.History()); got != "f5 d6 c3" {
		t.Fatalf("unexpected history %q", got)
	}
}

func TestIllegalBookMoveFallsThrough(t *testing.T) {
	bk, _ := book.Load(strings.NewReader("a1\n"))
	p := newTestPlayer(game.Black, bk)
	m := p.TakeTurn(nil, 60000)
	if m == nil || m.String() == "a1" || !game.IsLegal(game.NewBoard(), m, game.Black) {
		t.Fatalf("expected a searched legal move, got %v", m)
	}
}

func TestSetBoardSkipsBook(t *testing.T) {
	bk, _ := book.Load(strings.NewReader("f5\n"))
	p := newTestPlayer(game.Black, bk)
	p.SetBoard(game.NewBoard())
	m := p.TakeTurn(nil, 60000)
	if m == nil {
		t.Fatalf("expected a move")
	}
	want, _, _ := game.NewSearcher(game.DefaultEvaluator(), game.DefaultSearchConfig()).
		FindBestMoveAtDepth(game.NewBoard(), game.Black, 2)
	if !game.SameCell(m, want) {
		t.Fatalf("expected searched move %v, got %v", want, m)
	}
}

func TestPlayersFinishAGame(t *testing.T) {
	black := newTestPlayer(game.Black, nil)
	white := newTestPlayer(game.White, nil)

	var last *game.Move
	current, other := black, white
	passes := 0
	for plies := 0; passes < 2; plies++ {
		if plies > 130 {
			t.Fatalf("game did not finish")
		}
		board := current.Board()
		if last != nil {
			board = game.Play(board, last, current.Side().Opponent())
		}
		m := current.TakeTurn(last, 60000)
		if m == nil {
			if game.HasLegalMove(board, current.Side()) {
				t.Fatalf("player passed with legal moves available")
			}
			passes++
		} else {
			if !game.IsLegal(board, m, current.Side()) {
				t.Fatalf("player returned illegal move %v", m)
			}
			passes = 0
		}
		last = m
		current, other = other, current
	}
	if !game.IsTerminal(black.Board()) || black.Board() != white.Board() {
		t.Fatalf("expected both players to hold the same terminal board")
	}
}
