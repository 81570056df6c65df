package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"othello_go/internal/bootstrap"
	"othello_go/internal/game"
)

// columns per row: tensor, move index, outcome for the mover, game id
const rowCols = game.TensorLen + 3

func main() {
	// ───── flags ─────
	numGames := flag.Int("n", 5000, "total games wanted in the dataset")
	depth := flag.Int("d", 2, "search depth")
	outFile := flag.String("out", "dataset.csv", "CSV file")
	cfgPath := flag.String("config", "", "config file (optional)")
	seed := flag.Int64("seed", 0, "random seed, 0 uses the clock")
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

	eval, err := cfg.NewEvaluator()
	if err != nil {
		logger.Fatalw("Failed to build evaluator", "error", err)
	}
	searchCfg := cfg.Search()
	// games already run in parallel
	searchCfg.Parallel = false

	// ───── repair CSV ─────
	done, err := repairCSV(*outFile, rowCols, logger)
	if err != nil {
		logger.Fatalw("Failed to repair dataset", "path", *outFile, "error", err)
	}

	f, err := os.OpenFile(*outFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		logger.Fatalw("Failed to open dataset", "path", *outFile, "error", err)
	}
	w := csv.NewWriter(f)
	var wMu sync.Mutex
	defer func() { w.Flush(); f.Close() }()

	// ───── worker pool ─────
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	logger.Infow("Starting self-play", "cpus", runtime.NumCPU(), "workers", workers, "done", done, "target", *numGames, "seed", *seed)

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(*seed + int64(workerID)))
			s := game.NewSearcher(eval, searchCfg)

			for id := range jobs {
				rows, ok := playOneGame(s, *depth, id, r)
				if !ok {
					continue
				}

				wMu.Lock()
				for _, row := range rows {
					if err := w.Write(row); err != nil {
						logger.Errorw("Failed to write row", "error", err)
					}
				}
				w.Flush()
				wMu.Unlock()
			}
		}(i)
	}

	// ───── dispatch ─────
	for g := done; g < *numGames; g++ {
		jobs <- g
		if (g+1-done)%100 == 0 {
			logger.Infow("Dispatch progress", "sent", g+1-done, "of", *numGames-done)
		}
	}
	close(jobs)
	wg.Wait()
	logger.Infow("Self-play finished", "games", *numGames)
}

/*
playOneGame turns one finished game of at least minMoves plies into CSV rows.

	ok=false means the game was discarded as too short.
*/
func playOneGame(s *game.Searcher, depth int, id int, r *rand.Rand) ([][]string, bool) {
	const minMoves = 20

	state := game.NewGameState()
	addRandomOpening(state, 2, r)

	var (
		rows  [][]string
		sides []game.Side
	)
	for !state.GameOver {
		side := state.Current
		var (
			mv *game.Move
			ok bool
		)
		if id%3 == 0 && side == game.White {
			// every third game white is the greedy opponent
			mv, ok = game.GreedyMove(state.Board, side)
		} else {
			mv, _, ok = s.FindBestMoveAtDepth(state.Board, side, depth)
		}
		if !ok {
			break
		}

		tensor := game.EncodeBoardTensor(state.Board, side)
		row := make([]string, 0, rowCols)
		for _, v := range tensor {
			if v == 0 {
				row = append(row, "0")
			} else {
				row = append(row, "1")
			}
		}
		row = append(row, strconv.Itoa(game.MoveIndex(mv)))
		rows = append(rows, row)
		sides = append(sides, side)

		if _, err := state.MakeMove(mv); err != nil {
			return nil, false
		}
	}
	if len(rows) < minMoves {
		return nil, false
	}

	gameID := uuid.New().String()
	for i := range rows {
		z := winnerValue(state, sides[i])
		rows[i] = append(rows[i], strconv.Itoa(z), gameID)
	}
	return rows, true
}

func addRandomOpening(st *game.GameState, plies int, r *rand.Rand) {
	for i := 0; i < plies && !st.GameOver; i++ {
		moves := game.GenerateMoves(st.Board, st.Current)
		if len(moves) == 0 {
			return
		}
		st.MakeMove(moves[r.Intn(len(moves))])
	}
}

// winnerValue returns +1 / 0 / -1 from side's point of view.
func winnerValue(st *game.GameState, side game.Side) int {
	w, ok := st.Winner()
	switch {
	case !ok:
		return 0
	case w == side:
		return 1
	}
	return -1
}

// repairCSV truncates a trailing partial line and returns how many distinct
// games the remaining rows hold.
func repairCSV(path string, expectCols int, logger *zap.SugaredLogger) (int, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var offset int64
	rdr := bufio.NewReader(f)
	games := make(map[string]struct{})
	partial := false
	for {
		line, err := rdr.ReadBytes('\n')
		if err == io.EOF && len(line) == 0 {
			break
		} else if err != nil && err != io.EOF {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
		if err == io.EOF || countCSVColumns(line) != expectCols {
			partial = true
			break
		}
		offset += int64(len(line))
		games[lastColumn(line)] = struct{}{}
	}
	if partial {
		if err := f.Truncate(offset); err != nil {
			return 0, fmt.Errorf("truncate %s: %w", path, err)
		}
		logger.Warnw("Truncated partial row", "path", path, "offset", offset, "games", len(games))
	}
	return len(games), nil
}

func countCSVColumns(line []byte) int {
	return bytes.Count(line, []byte{','}) + 1
}

func lastColumn(line []byte) string {
	line = bytes.TrimRight(line, "\r\n")
	return string(line[bytes.LastIndexByte(line, ',')+1:])
}
