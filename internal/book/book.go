// Package book holds opening lines for the move selector.
//
// A book file is line oriented. Each line is one opening, written as
// lowercase move pairs either packed ("f5d6c3") or separated by spaces
// ("f5 d6 c3"). Blank lines and lines starting with '#' are ignored; a line
// with an unreadable move is skipped and counted.
package book

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"othello_go/internal/game"
)

type node struct {
	next  map[int]*node
	order []int // child cells in the order they were first recorded
}

func newNode() *node {
	return &node{next: make(map[int]*node)}
}

// Book is a prefix tree of opening lines keyed by cell index.
type Book struct {
	root    *node
	lines   int
	skipped int
}

// New returns an empty book.
func New() *Book {
	return &Book{root: newNode()}
}

// Load reads every line from r.
func Load(r io.Reader) (*Book, error) {
	bk := New()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		moves, err := parseLine(line)
		if err != nil {
			bk.skipped++
			continue
		}
		bk.Add(moves)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read book: %w", err)
	}
	return bk, nil
}

// LoadFile opens path and loads it.
func LoadFile(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func parseLine(line string) ([]*game.Move, error) {
	packed := strings.Join(strings.Fields(line), "")
	if len(packed)%2 != 0 {
		return nil, game.ErrBadNotation
	}
	moves := make([]*game.Move, 0, len(packed)/2)
	for _, tok := range lo.ChunkString(packed, 2) {
		m, err := game.ParseMove(tok)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// Add records one opening line. Passes are not part of a line.
func (bk *Book) Add(moves []*game.Move) {
	n := bk.root
	for _, m := range lo.Compact(moves) {
		i := m.Index()
		child, ok := n.next[i]
		if !ok {
			child = newNode()
			n.next[i] = child
			n.order = append(n.order, i)
		}
		n = child
	}
	bk.lines++
}

// Next returns the recorded continuations of history, first recorded first.
// Passes in history are ignored. It returns nil when history has left the book.
func (bk *Book) Next(history []*game.Move) []*game.Move {
	if bk == nil {
		return nil
	}
	n := bk.root
	for _, m := range history {
		if m == nil {
			continue
		}
		child, ok := n.next[m.Index()]
		if !ok {
			return nil
		}
		n = child
	}
	return lo.Map(n.order, func(i int, _ int) *game.Move {
		return game.MoveAt(i)
	})
}

// Lines is the number of recorded lines.
func (bk *Book) Lines() int { return bk.lines }

// Skipped is the number of malformed lines dropped while loading.
func (bk *Book) Skipped() int { return bk.skipped }
