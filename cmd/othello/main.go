package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"othello_go/internal/book"
	"othello_go/internal/bootstrap"
	"othello_go/internal/game"
	"othello_go/internal/player"
)

func main() {
	side := flag.String("side", "black", "side to play: black or white")
	cfgPath := flag.String("config", "", "config file (optional)")
	flag.Parse()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger, err := bootstrap.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	p, err := newPlayer(*side, cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to set up player", "error", err)
	}
	logger.Infow("Player ready", "side", p.Side().String(), "evaluator", cfg.Evaluator, "book", cfg.BookPath)

	in := bufio.NewScanner(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		opp, msLeft, err := parseTurn(line)
		if err != nil {
			logger.Warnw("Bad turn line", "line", line, "error", err)
			continue
		}
		reply := "pass"
		if m := p.TakeTurn(opp, msLeft); m != nil {
			reply = m.String()
		}
		fmt.Fprintln(out, reply)
		out.Flush()
	}
	if err := in.Err(); err != nil {
		logger.Errorw("Failed to read input", "error", err)
	}
}

func newPlayer(side string, cfg *bootstrap.Config, logger *zap.SugaredLogger) (*player.Player, error) {
	var s game.Side
	switch strings.ToLower(side) {
	case "black", "b":
		s = game.Black
	case "white", "w":
		s = game.White
	default:
		return nil, fmt.Errorf("unknown side %q", side)
	}

	eval, err := cfg.NewEvaluator()
	if err != nil {
		return nil, err
	}
	var bk *book.Book
	if cfg.BookPath != "" {
		if bk, err = book.LoadFile(cfg.BookPath); err != nil {
			return nil, err
		}
		logger.Infow("Opening book loaded", "lines", bk.Lines(), "skipped", bk.Skipped())
	}

	searcher := game.NewSearcher(eval, cfg.Search())
	return player.New(s, searcher, player.TimeBudget{Cfg: cfg.Search()}, bk, logger), nil
}

// parseTurn reads "<move|pass|-> <msLeft>".
func parseTurn(line string) (*game.Move, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, 0, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}
	msLeft, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, 0, fmt.Errorf("msLeft: %w", err)
	}
	switch strings.ToLower(fields[0]) {
	case "-", "pass":
		return nil, msLeft, nil
	}
	m, err := game.ParseMove(fields[0])
	if err != nil {
		return nil, 0, fmt.Errorf("move %q: %w", fields[0], err)
	}
	return m, msLeft, nil
}
