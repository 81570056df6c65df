// Command features turns self-play rows into evaluator term breakdowns,
// one row per position, for fitting the evaluation weights.
package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"othello_go/internal/bootstrap"
	"othello_go/internal/game"
)

var header = []string{
	"empties", "piece", "mobility", "positional", "corner", "closeness", "frontier", "label",
}

// rows hold boards from the mover's point of view, so the mover is decoded
// as Black throughout
const mover = game.Black

type extractor struct {
	weighted *game.WeightedEvaluator
	frontier *game.FrontierEvaluator
}

func newExtractor() extractor {
	return extractor{
		weighted: game.DefaultEvaluator(),
		frontier: game.NewFrontierEvaluator(game.DefaultPositionTable),
	}
}

// features decodes one self-play row and returns its output row.
func (e extractor) features(rec []string) ([]string, error) {
	if len(rec) != game.TensorLen+3 {
		return nil, fmt.Errorf("expected %d columns, got %d", game.TensorLen+3, len(rec))
	}
	tensor := make([]float32, game.TensorLen)
	for i := range tensor {
		v, err := strconv.ParseFloat(rec[i], 32)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		tensor[i] = float32(v)
	}
	b, err := game.DecodeBoardTensor(tensor, mover)
	if err != nil {
		return nil, err
	}

	t := e.weighted.Terms(b, mover)
	feats := []float64{
		float64(b.Empties()) / game.CellCount,
		t.Piece,
		t.Mobility,
		t.Positional,
		t.Corner,
		t.Closeness,
		e.frontier.Score(b, mover),
	}
	row := make([]string, len(feats)+1)
	for j, v := range feats {
		row[j] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	row[len(feats)] = rec[game.TensorLen+1]
	return row, nil
}

func processFile(fn string, e extractor, out chan<- []string, log *zap.SugaredLogger) error {
	f, err := os.Open(fn)
	if err != nil {
		return fmt.Errorf("open %s: %w", fn, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	line := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("%s line %d: %w", fn, line, err)
		}
		row, err := e.features(rec)
		if err != nil {
			log.Warnw("Skipping row", "file", fn, "line", line, "error", err)
			continue
		}
		out <- row
	}
}

// newLogger builds the logger at the LOG_LEVEL of the loaded config.
func newLogger(cfgPath string) (*zap.SugaredLogger, error) {
	cfg, err := bootstrap.Setup(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger, err := bootstrap.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return logger, nil
}

func main() {
	in := flag.String("in", "dataset*.csv", "glob of self-play CSV files")
	outPath := flag.String("out", "features.csv", "output CSV")
	cfgPath := flag.String("config", "", "config file (optional)")
	flag.Parse()

	logger, err := newLogger(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	files, err := filepath.Glob(*in)
	if err != nil {
		logger.Fatalw("Bad glob", "pattern", *in, "error", err)
	}

	outFile, err := os.OpenFile(*outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		logger.Fatalw("Failed to create output", "path", *outPath, "error", err)
	}
	defer outFile.Close()

	bw := bufio.NewWriter(outFile)
	writer := csv.NewWriter(bw)
	if err := writer.Write(header); err != nil {
		logger.Fatalw("Failed to write header", "error", err)
	}

	rows := make(chan []string, 1000)
	written := make(chan int)
	go func() {
		n := 0
		for row := range rows {
			if err := writer.Write(row); err != nil {
				logger.Errorw("Failed to write row", "error", err)
				continue
			}
			n++
		}
		written <- n
	}()

	// at most NumCPU files in flight
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	e := newExtractor()
	for _, fn := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(fn string) {
			defer func() { <-sem; wg.Done() }()
			if err := processFile(fn, e, rows, logger); err != nil {
				logger.Errorw("Failed to process file", "file", fn, "error", err)
			}
		}(fn)
	}

	wg.Wait()
	close(rows)
	n := <-written

	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Errorw("Flush failed", "error", err)
	}
	if err := bw.Flush(); err != nil {
		logger.Errorw("Flush failed", "error", err)
	}
	logger.Infow("Done exporting features", "files", len(files), "rows", n)
}
