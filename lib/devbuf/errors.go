package devbuf

import "errors"

var (
	// ErrCompressedSeek is returned by any seek attempt on a z-compr
	// stream, per spec.md §9.
	ErrCompressedSeek = errors.New("devbuf: cannot seek a compressed stream")
	// ErrAppendSeek is returned by any seek attempt on an append-mode
	// stream beyond reporting the current position.
	ErrAppendSeek = errors.New("devbuf: cannot seek an append-mode stream")
	// ErrDirectionMismatch is returned when Reader()/Writer() is called on
	// a Buffer not opened for that direction.
	ErrDirectionMismatch = errors.New("devbuf: stream not opened for this direction")
)
