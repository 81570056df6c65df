package nnue

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"othello_go/internal/game"
)

func randomNet(in int, seed int64) *Net {
	r := rand.New(rand.NewSource(seed))
	n := New(in, 16, 8)
	for _, p := range n.Params() {
		for i := range p {
			p[i] = float32(r.NormFloat64() * 0.1)
		}
	}
	return n
}

func TestSaveLoadRoundTrip(t *testing.T) {
	n := randomNet(game.TensorLen, 1)
	var buf bytes.Buffer
	if err := n.Save(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := Load(&buf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	inp := game.EncodeBoardTensor(game.NewBoard(), game.Black)
	if n.Eval(inp[:]) != back.Eval(inp[:]) {
		t.Fatalf("loaded net evaluates differently")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(bytes.NewReader(nil)); err == nil {
		t.Fatalf("expected an error on empty input")
	}
	var buf bytes.Buffer
	New(4, 0, 2).Save(&buf)
	if _, err := Load(&buf); !errors.Is(err, ErrBadHeader) {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
	buf.Reset()
	New(4, 2, 2).Save(&buf)
	buf.Truncate(buf.Len() - 4)
	if _, err := Load(&buf); err == nil {
		t.Fatalf("expected an error on truncated weights")
	}

	for _, hdr := range [][4]int32{
		{1 << 30, 1 << 30, 1 << 30, 0},
		{maxInDim + 1, 2, 2, 0},
		{4, maxHidden + 1, 2, 0},
		{maxInDim, maxHidden, maxHidden, 0},
	} {
		buf.Reset()
		if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
			t.Fatalf("write header: %v", err)
		}
		if _, err := Load(&buf); !errors.Is(err, ErrBadHeader) {
			t.Fatalf("header %v: expected ErrBadHeader, got %v", hdr, err)
		}
	}
}

func TestLoadFileChecksSize(t *testing.T) {
	var buf bytes.Buffer
	if err := New(game.TensorLen, 4, 2).Save(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	dir := t.TempDir()
	good := filepath.Join(dir, "good.nnue")
	if err := os.WriteFile(good, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// header claims more weights than the file holds
	short := filepath.Join(dir, "short.nnue")
	if err := os.WriteFile(short, buf.Bytes()[:buf.Len()-8], 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(short); !errors.Is(err, ErrBadHeader) {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
}

func TestEvaluatorAntisymmetric(t *testing.T) {
	e, err := NewEvaluator(randomNet(game.TensorLen, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := game.Play(game.NewBoard(), game.NewMove(2, 3), game.Black)
	if s := e.Score(b, game.Black) + e.Score(b, game.White); math.Abs(s) > 1e-9 {
		t.Fatalf("expected antisymmetric scores, got sum %v", s)
	}
	s := game.NewSearcher(e, game.SearchConfig{})
	if m, _, ok := s.FindBestMoveAtDepth(b, game.White, 2); !ok || !game.IsLegal(b, m, game.White) {
		t.Fatalf("expected a legal move from a net-guided search, got %v", m)
	}
}

func TestEvaluatorInputSize(t *testing.T) {
	if _, err := NewEvaluator(New(10, 2, 2)); !errors.Is(err, ErrBadHeader) {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
}
