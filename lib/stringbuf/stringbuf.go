// Package stringbuf implements the growing character array from
// spec.md §4.5: an output buffer backed by an owning, growable byte slice,
// whose Writer can serve as the io.Writer sink of the numeric formatting
// path (scvt.WriteInt/WriteUint) when no caller-supplied destination exists.
package stringbuf

import (
	"errors"

	"github.com/vireling/uxs/lib/device"
	"github.com/vireling/uxs/lib/iobuf"
)

const minGrow = 64

var (
	ErrInvalidWhence    = errors.New("stringbuf: invalid whence")
	ErrNegativePosition = errors.New("stringbuf: negative seek position")
)

// Buffer owns a growable byte slice. The zero value is an empty buffer
// ready to use.
type Buffer struct {
	data []byte
}

// New returns an empty Buffer.
func New() *Buffer { return &Buffer{} }

// NewSize returns an empty Buffer with capacity pre-reserved.
func NewSize(capHint int) *Buffer {
	return &Buffer{data: make([]byte, 0, capHint)}
}

// Bytes returns the committed content. Only content written through a
// flushed Writer (Write/Put followed by Flush, or a Seek) is reflected;
// bytes still sitting in an open Output's window are not yet visible.
func (b *Buffer) Bytes() []byte { return b.data }

// Len reports the committed content's length.
func (b *Buffer) Len() int { return len(b.data) }

// Reset empties the buffer without releasing its capacity.
func (b *Buffer) Reset() { b.data = b.data[:0] }

// Truncate caps the logical size at n, keeping capacity, per spec.md §4.5.
func (b *Buffer) Truncate(n int) error {
	if n < 0 || n > cap(b.data) {
		return ErrNegativePosition
	}
	if n > len(b.data) {
		return nil
	}
	b.data = b.data[:n]
	return nil
}

// Writer returns a push cursor over the buffer's backing array.
func (b *Buffer) Writer() *iobuf.Output {
	out := iobuf.NewOutput(&bufSink{b}, nil)
	out.SetWindow(b.window(), 0, len(b.data), cap(b.data))
	return out
}

func (b *Buffer) window() []byte { return b.data[:cap(b.data)] }

// grow reallocates the backing array so cap(data) >= n, zero-filling the
// new tail (make() guarantees a zeroed slice; only the old content is
// copied over it).
func (b *Buffer) grow(n int) {
	if cap(b.data) >= n {
		return
	}
	growBy := cap(b.data) / 2
	if growBy < minGrow {
		growBy = minGrow
	}
	newCap := cap(b.data) + growBy
	if newCap < n {
		newCap = n
	}
	newData := make([]byte, newCap)
	copy(newData, b.data)
	b.data = newData[:len(b.data)]
}

func (b *Buffer) commit(buf []byte, n int) {
	if n <= cap(b.data) {
		b.data = buf[:n]
	}
}

// bufSink is the Sink capability backing a stringbuf Writer.
type bufSink struct{ b *Buffer }

func (s *bufSink) Overflow(out *iobuf.Output) error {
	buf, _, curr, _ := out.Window()
	s.b.commit(buf, curr)
	s.b.grow(curr + 1)
	out.SetWindow(s.b.window(), 0, curr, cap(s.b.data))
	return nil
}

func (s *bufSink) Sync(out *iobuf.Output) error {
	_, _, curr, _ := out.Window()
	s.b.commit(s.b.window(), curr)
	return nil
}

func (s *bufSink) SeekImpl(out *iobuf.Output, off int64, whence int) (int64, error) {
	_, _, curr, _ := out.Window()
	s.b.commit(s.b.window(), curr)

	var base int64
	switch whence {
	case device.SeekStart:
		base = 0
	case device.SeekCurrent, device.SeekEnd:
		base = int64(len(s.b.data))
	default:
		return 0, ErrInvalidWhence
	}
	pos := base + off
	if pos < 0 {
		return 0, ErrNegativePosition
	}
	s.b.grow(int(pos))
	if old := len(s.b.data); int(pos) > old {
		s.b.data = s.b.data[:pos]
		clear(s.b.data[old:]) // sparse write: capacity kept by Truncate/Reset may hold old bytes
	}
	out.SetWindow(s.b.window(), 0, int(pos), cap(s.b.data))
	return pos, nil
}
