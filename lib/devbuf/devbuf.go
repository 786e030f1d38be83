// Package devbuf implements the hardest component of the stream stack
// (spec.md §4.4): a bidirectional character buffer that pairs a
// device.Device with iobuf.Input/Output, applying three orthogonal
// transforms in order at the device boundary — optional deflate, CRLF
// translation, and ANSI/SGR escape recognition.
package devbuf

import (
	"log/slog"

	"github.com/vireling/uxs/lib/device"
	"github.com/vireling/uxs/lib/iobuf"
)

const (
	kMinBufSize = 512
	minAuxSize  = 16
)

// Buffer is the devbuf from spec.md §4.4. Not safe for concurrent use.
type Buffer struct {
	dev  device.Device
	mode iobuf.Mode

	winbuf []byte // the shared character window; one direction owns it at a time
	in     *iobuf.Input
	out    *iobuf.Output

	devPos    int64  // device-relative position in character units
	pendingCR bool   // a deferred '\r' to prefix the next read-side fill
	pendingSeq []byte // an ANSI sequence split across two flushes

	colorSink        device.ColorSink
	log              *slog.Logger
	compressionLevel int

	tie *Buffer // non-owning peer flushed before this buffer touches its device
}

// Option configures a Buffer at construction.
type Option func(*Buffer)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Buffer) { b.log = l }
}

// WithCompressionLevel sets the deflate level (1-9, 0 = library default)
// used when mode has iobuf.ZCompr set.
func WithCompressionLevel(level int) Option {
	return func(b *Buffer) { b.compressionLevel = level }
}

// New wires dev into a Buffer per spec.md §4.4 "Initialization." Neither In
// nor Out set leaves the buffer in a permanently failed state, matching the
// C original's behavior rather than returning an error — callers that build
// a Buffer with a zero Mode get a Buffer whose Input/Output are both nil and
// whose Reader/Writer accessors report ErrDirectionMismatch.
func New(dev device.Device, mode iobuf.Mode, bufSize int, opts ...Option) *Buffer {
	// spec.md §4.4 step 2: out set clears in — the buffer is a source or a
	// sink, never both at once within one character window.
	if mode&iobuf.Out != 0 {
		mode &^= iobuf.In
	}
	if bufSize < kMinBufSize {
		bufSize = kMinBufSize
	}

	b := &Buffer{mode: mode, log: slog.Default()}
	for _, o := range opts {
		o(b)
	}

	if mode&iobuf.ZCompr != 0 {
		dev = newCompressDevice(dev, b.compressionLevel)
	}
	b.dev = dev

	// spec.md §4.4 step 4's CRLF expansion headroom lives in the separate
	// aux buffer flushBuffer allocates (io.go), not in winbuf itself, so
	// winbuf is sized to exactly bufSize.
	b.winbuf = make([]byte, bufSize)

	if pos, err := dev.Seek(0, device.SeekCurrent); err == nil {
		b.devPos = pos
	}

	switch {
	case mode&iobuf.In != 0:
		b.in = iobuf.NewInput(bufSource{b}, b.winbuf)
	case mode&iobuf.Out != 0:
		b.out = iobuf.NewOutput(bufSink{b}, b.winbuf)
	}

	if cs, ok := dev.(device.ColorSink); ok {
		b.colorSink = cs
	}
	return b
}

// Reader returns the Input half of this Buffer, or ErrDirectionMismatch if
// it was not opened for reading.
func (b *Buffer) Reader() (*iobuf.Input, error) {
	if b.in == nil {
		return nil, ErrDirectionMismatch
	}
	return b.in, nil
}

// Writer returns the Output half of this Buffer, or ErrDirectionMismatch if
// it was not opened for writing.
func (b *Buffer) Writer() (*iobuf.Output, error) {
	if b.out == nil {
		return nil, ErrDirectionMismatch
	}
	return b.out, nil
}

// Tie marks peer as a buffer that must be flushed before this Buffer reads
// from or writes to its device, per spec.md §5's non-owning "tie" relation
// (e.g. stdin ties to stdout so a prompt is visible before the read blocks).
func (b *Buffer) Tie(peer *Buffer) { b.tie = peer }

func (b *Buffer) flushTie() error {
	if b.tie == nil || b.tie.out == nil {
		return nil
	}
	return b.tie.out.Flush()
}

// mapper reports the device's zero-copy Mapper capability, per spec.md
// §4.2's mapped-span loop. A device that implements device.Capable but
// does not advertise the Mappable bit is never probed for Map/Advance even
// if it happens to implement the Mapper interface; a device silent on
// Capable is assumed mappable, matching device.Capable's documented
// default.
func (b *Buffer) mapper() (device.Mapper, bool) {
	m, ok := b.dev.(device.Mapper)
	if !ok {
		return nil, false
	}
	if c, ok := b.dev.(device.Capable); ok && c.Capabilities()&device.Mappable == 0 {
		return nil, false
	}
	return m, true
}

// Close flushes (if writable) and releases the underlying device.
func (b *Buffer) Close() error {
	if b.out != nil {
		if err := b.out.Flush(); err != nil {
			b.dev.Close()
			return err
		}
	}
	return b.dev.Close()
}

// bufSource/bufSink adapt Buffer to iobuf.Source/iobuf.Sink. Go does not
// allow two methods named SeekImpl with different parameter types on one
// receiver, so the capability sets are split into two thin wrapper types
// instead of implementing both interfaces directly on *Buffer.
type bufSource struct{ b *Buffer }

func (s bufSource) Underflow(in *iobuf.Input) (int, error) { return s.b.underflow(in) }
func (s bufSource) UngetFail(in *iobuf.Input) error        { return s.b.ungetFail(in) }
func (s bufSource) SeekImpl(in *iobuf.Input, off int64, whence int) (int64, error) {
	return s.b.seekFromInput(in, off, whence)
}

type bufSink struct{ b *Buffer }

func (s bufSink) Overflow(out *iobuf.Output) error { return s.b.overflow(out) }
func (s bufSink) Sync(out *iobuf.Output) error     { return s.b.sync(out) }
func (s bufSink) SeekImpl(out *iobuf.Output, off int64, whence int) (int64, error) {
	return s.b.seekFromOutput(out, off, whence)
}
