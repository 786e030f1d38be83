package iobuf

import (
	"errors"
	"io"
)

// ErrBadStream is returned by Read when the stream state is Bad rather than
// a clean EOF.
var ErrBadStream = errors.New("iobuf: read on stream in bad state")

// Source is the capability a concrete stream (devbuf, flatbuf, ...) must
// supply to back an Input cursor: how to refill the window on exhaustion,
// how to react to an unget at the start of the window, and how to reposition
// absolutely. Exactly the {underflow, ungetfail, seek-impl} capability set
// from spec.md §9.
type Source interface {
	// Underflow is called when Curr==Last. It must grow/replace the window
	// (first, curr, last, buf) and return the number of characters now
	// available to read, or 0 with io.EOF on clean end-of-stream.
	Underflow(in *Input) (int, error)

	// UngetFail is called when Unget is requested with Curr==First. Most
	// sources are not reversible past the window and simply return an
	// error; a source that can step the device backwards may instead widen
	// the window and succeed.
	UngetFail(in *Input) error

	// SeekImpl repositions the stream absolutely. Input clears its EOF bit
	// before calling it; Input does not flush any tied sink.
	SeekImpl(in *Input, off int64, whence int) (int64, error)
}

// Input is a character-typed pull cursor over a Source. It holds no
// ownership of the backing array: the Source decides how buf is allocated
// and grown.
//
// Not safe for concurrent use; see spec.md §5.
type Input struct {
	buf   []byte
	first int
	curr  int
	last  int
	st    State
	src   Source
}

// NewInput wires an Input to its Source. buf may be nil; the first
// Underflow call is expected to populate it.
func NewInput(src Source, buf []byte) *Input {
	return &Input{buf: buf, src: src}
}

// Window exposes the current character window for sources that need to
// inspect or rewrite it in place (flatbuf's SeekImpl reads curr from it).
func (in *Input) Window() (buf []byte, first, curr, last int) {
	return in.buf, in.first, in.curr, in.last
}

// SetWindow replaces the window wholesale; called by a Source from within
// Underflow/SeekImpl.
func (in *Input) SetWindow(buf []byte, first, curr, last int) {
	in.buf, in.first, in.curr, in.last = buf, first, curr, last
}

// State returns the current sticky status.
func (in *Input) State() State { return in.st }

// Clear resets State to Good.
func (in *Input) Clear() { in.st.Clear() }

// Avail returns the number of characters immediately available without a
// refill.
func (in *Input) Avail() int { return in.last - in.curr }

func (in *Input) refill() bool {
	if in.st.Fail() {
		return false
	}
	n, err := in.src.Underflow(in)
	if n <= 0 {
		if err == io.EOF || err == nil {
			in.st.SetEOF()
		} else {
			in.st.SetBad()
		}
		return false
	}
	return true
}

// Peek returns the next character without consuming it. ok is false on
// EOF/failure, matching spec.md §7's sentinel-value contract.
func (in *Input) Peek() (b byte, ok bool) {
	if in.curr == in.last && !in.refill() {
		return 0, false
	}
	return in.buf[in.curr], true
}

// Get consumes and returns the next character.
func (in *Input) Get() (b byte, ok bool) {
	if in.curr == in.last && !in.refill() {
		return 0, false
	}
	b = in.buf[in.curr]
	in.curr++
	return b, true
}

// Unget backs Curr by one. If Curr is already at First, UngetFail decides
// whether this succeeds.
func (in *Input) Unget() error {
	if in.curr > in.first {
		in.curr--
		return nil
	}
	if err := in.src.UngetFail(in); err != nil {
		in.st.SetFail()
		return err
	}
	return nil
}

// Skip consumes n characters, refilling as needed. It returns the number
// actually skipped, which is less than n only at EOF.
func (in *Input) Skip(n int) int {
	skipped := 0
	for skipped < n {
		if in.curr == in.last && !in.refill() {
			break
		}
		step := n - skipped
		if avail := in.last - in.curr; step > avail {
			step = avail
		}
		in.curr += step
		skipped += step
	}
	return skipped
}

// Read implements io.Reader in terms of Get/refill, for interop with
// standard library consumers.
func (in *Input) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		if in.curr == in.last && !in.refill() {
			if total > 0 {
				return total, nil
			}
			if in.st.EOF() {
				return 0, io.EOF
			}
			return 0, ErrBadStream
		}
		n := copy(p[total:], in.buf[in.curr:in.last])
		in.curr += n
		total += n
	}
	return total, nil
}

// ReadInverted is Read followed by an in-place reversal of every elemSize
// group, plus any trailing partial group, per spec.md §6's invert-endian
// contract.
func (in *Input) ReadInverted(p []byte, elemSize int) (int, error) {
	n, err := in.Read(p)
	ReverseGroups(p[:n], elemSize)
	return n, err
}

// Tell reports the absolute stream position. pos = devicePos - (last - curr)
// per spec.md §3; callers supply devicePos since only the Source knows it.
func (in *Input) Tell(devicePos int64) int64 {
	return devicePos - int64(in.last-in.curr)
}

// Seek clears EOF and delegates to the Source after the caller has synced
// any tied sink (spec.md §4.3).
func (in *Input) Seek(off int64, whence int) (int64, error) {
	in.st &^= EOF
	pos, err := in.src.SeekImpl(in, off, whence)
	if err != nil {
		in.st.SetBad()
		return 0, err
	}
	return pos, nil
}
