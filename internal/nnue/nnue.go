// internal/nnue/nnue.go (single-threaded FP32 value net)
package nnue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

var ErrBadHeader = errors.New("nnue: bad header")

// size limits on a loaded net
const (
	maxInDim  = 1 << 16
	maxHidden = 1 << 12
	maxParams = 1 << 24
)

// Net is a two hidden layer ReLU network with a tanh value head.
//
// File layout, little endian: int32 header {in, h1, h2, 0}, then float32
// l1w[h1*in] l1b[h1] l2w[h2*h1] l2b[h2] valw[h2] valb[1].
type Net struct {
	l1w, l2w, valw []float32
	l1b, l2b, valb []float32
	inDim, h1, h2  int
}

// New returns a zero-weight net of the given shape.
func New(in, h1, h2 int) *Net {
	return &Net{
		inDim: in, h1: h1, h2: h2,
		l1w: make([]float32, in*h1), l1b: make([]float32, h1),
		l2w: make([]float32, h1*h2), l2b: make([]float32, h2),
		valw: make([]float32, h2), valb: make([]float32, 1),
	}
}

func (n *Net) InDim() int { return n.inDim }

// Params lists every weight slice in file order.
func (n *Net) Params() [][]float32 {
	return [][]float32{n.l1w, n.l1b, n.l2w, n.l2b, n.valw, n.valb}
}

func Load(r io.Reader) (*Net, error) {
	var hdr [4]int32
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("nnue header: %w", err)
	}
	in, h1, h2 := int(hdr[0]), int(hdr[1]), int(hdr[2])
	if err := checkShape(in, h1, h2); err != nil {
		return nil, fmt.Errorf("%w: %v", err, hdr)
	}
	net := New(in, h1, h2)
	for _, p := range net.Params() {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return nil, fmt.Errorf("nnue weights: %w", err)
		}
	}
	return net, nil
}

func checkShape(in, h1, h2 int) error {
	if in <= 0 || h1 <= 0 || h2 <= 0 || in > maxInDim || h1 > maxHidden || h2 > maxHidden {
		return ErrBadHeader
	}
	if paramCount(in, h1, h2) > maxParams {
		return ErrBadHeader
	}
	return nil
}

func paramCount(in, h1, h2 int) int {
	return in*h1 + h1 + h1*h2 + h2 + h2 + 1
}

// LoadFile loads path, rejecting files whose size does not match the header.
func LoadFile(path string) (*Net, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open net %s: %w", path, err)
	}
	defer f.Close()

	var hdr [4]int32
	if err := binary.Read(f, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("nnue header %s: %w", path, err)
	}
	in, h1, h2 := int(hdr[0]), int(hdr[1]), int(hdr[2])
	if err := checkShape(in, h1, h2); err != nil {
		return nil, fmt.Errorf("%w: %s %v", err, path, hdr)
	}
	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat net %s: %w", path, err)
	}
	if want := int64(16 + 4*paramCount(in, h1, h2)); st.Size() != want {
		return nil, fmt.Errorf("%w: %s is %d bytes, header needs %d", ErrBadHeader, path, st.Size(), want)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek net %s: %w", path, err)
	}
	return Load(f)
}

// Save writes n in the layout Load reads.
func (n *Net) Save(w io.Writer) error {
	hdr := [4]int32{int32(n.inDim), int32(n.h1), int32(n.h2), 0}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return err
	}
	for _, p := range n.Params() {
		if err := binary.Write(w, binary.LittleEndian, p); err != nil {
			return err
		}
	}
	return nil
}

// Eval returns the value of inp in (-1, 1).
func (n *Net) Eval(inp []float32) float32 {
	// FC1
	h1 := make([]float32, n.h1)
	for o := 0; o < n.h1; o++ {
		s := n.l1b[o]
		row := n.l1w[o*n.inDim : (o+1)*n.inDim]
		for i, x := range inp[:n.inDim] {
			if x != 0 {
				s += x * row[i]
			}
		}
		if s < 0 {
			s = 0
		}
		h1[o] = s
	}
	// FC2
	h2 := make([]float32, n.h2)
	for o := 0; o < n.h2; o++ {
		s := n.l2b[o]
		for i := 0; i < n.h1; i++ {
			s += h1[i] * n.l2w[o*n.h1+i]
		}
		if s < 0 {
			s = 0
		}
		h2[o] = s
	}
	// Val
	val := n.valb[0]
	for i := 0; i < n.h2; i++ {
		val += h2[i] * n.valw[i]
	}
	return float32(math.Tanh(float64(val)))
}
