// Package flatbuf implements the non-owning fixed-span view from
// spec.md §4 "Flat buffer": a read cursor over a caller-owned byte slice,
// with seeking within the span, used for parsing numbers and other tokens
// out of an existing string without copying it into a growable buffer.
package flatbuf

import (
	"errors"
	"io"

	"github.com/vireling/uxs/lib/device"
	"github.com/vireling/uxs/lib/iobuf"
)

// ErrInvalidWhence and ErrOutOfRange are returned by Seek.
var (
	ErrInvalidWhence = errors.New("flatbuf: invalid whence")
	ErrOutOfRange    = errors.New("flatbuf: seek out of range")
)

// View wraps a byte slice it does not own; the caller must keep the slice
// alive and must not mutate it while a Reader is in use.
type View struct {
	data []byte
}

// New wraps data as a flat view. data is not copied.
func New(data []byte) *View { return &View{data: data} }

// Len reports the span's length.
func (v *View) Len() int { return len(v.data) }

// Bytes returns the wrapped span.
func (v *View) Bytes() []byte { return v.data }

// Reader returns a fresh pull cursor over the whole span, positioned at
// the start. Independent Readers over the same View do not interfere.
func (v *View) Reader() *iobuf.Input {
	return iobuf.NewInput(&viewSource{data: v.data}, nil)
}

// viewSource is the Source capability backing a flatbuf Reader. Unlike a
// devbuf, there is only ever one window: the whole span, set up on the
// first Underflow call and never refilled again.
type viewSource struct {
	data      []byte
	delivered bool
}

func (s *viewSource) Underflow(in *iobuf.Input) (int, error) {
	if s.delivered {
		return 0, io.EOF
	}
	s.delivered = true
	in.SetWindow(s.data, 0, 0, len(s.data))
	if len(s.data) == 0 {
		return 0, io.EOF
	}
	return len(s.data), nil
}

func (s *viewSource) UngetFail(in *iobuf.Input) error {
	return iobuf.ErrBadStream
}

func (s *viewSource) SeekImpl(in *iobuf.Input, off int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case device.SeekStart:
		base = 0
	case device.SeekCurrent:
		_, _, curr, _ := in.Window()
		base = int64(curr)
	case device.SeekEnd:
		base = int64(len(s.data))
	default:
		return 0, ErrInvalidWhence
	}
	pos := base + off
	if pos < 0 || pos > int64(len(s.data)) {
		return 0, ErrOutOfRange
	}
	s.delivered = true
	in.SetWindow(s.data, 0, int(pos), len(s.data))
	return pos, nil
}
