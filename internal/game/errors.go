package game

import "errors"

var (
	ErrBadGrid     = errors.New("board grid must be 64 characters")
	ErrBadNotation = errors.New("move notation must be a file a-h followed by a rank 1-8")
	ErrBadTensor   = errors.New("board tensor has wrong length or overlapping planes")
)
