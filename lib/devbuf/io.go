package devbuf

import (
	"io"

	"github.com/vireling/uxs/lib/device"
	"github.com/vireling/uxs/lib/iobuf"
)

// underflow implements spec.md §4.4's read path: fill the window from the
// device, then collapse any `\r\n` pair to `\n`, parking a trailing `\r` as
// the deferred prefix for the next call so a CR/LF pair split across two
// device reads still collapses correctly.
func (b *Buffer) underflow(in *iobuf.Input) (int, error) {
	if err := b.flushTie(); err != nil {
		return 0, err
	}
	// No CRLF collapse applies to a raw byte stream, so a Mappable device
	// can hand the Input a view directly into its own memory instead of
	// going through a Read that copies into winbuf — spec.md §4.2's
	// mapped-span loop as the primary path.
	if b.mode&iobuf.Text == 0 {
		if m, ok := b.mapper(); ok {
			return b.underflowMapped(in, m)
		}
	}
	buf := b.winbuf
	for {
		start := 0
		if b.mode&iobuf.Text != 0 && b.pendingCR {
			buf[0] = '\r'
			start = 1
		}

		n, err := b.dev.Read(buf[start:])
		if n == 0 {
			if start > 0 {
				// A lone '\r' at the true end of the stream is delivered
				// as a literal character rather than dropped.
				in.SetWindow(buf, 0, 0, start)
				b.pendingCR = false
				return start, nil
			}
			if err == nil {
				err = io.EOF
			}
			return 0, err
		}
		b.devPos += int64(n)
		raw := buf[:start+n]

		if b.mode&iobuf.Text == 0 {
			in.SetWindow(buf, 0, 0, len(raw))
			return len(raw), nil
		}
		out, trailingCR := collapseCRLF(raw)
		b.pendingCR = trailingCR
		if len(out) == 0 {
			// The whole read collapsed into a deferred '\r'; it is not
			// yet known whether a '\n' will follow, so try again rather
			// than reporting a spurious empty fill.
			continue
		}
		in.SetWindow(buf, 0, 0, len(out))
		return len(out), nil
	}
}

// underflowMapped is the zero-copy counterpart to the Read-based fill loop
// above: the window is set directly to a span living inside the device
// rather than a copy, and the span is immediately Advance-d past since the
// Input will only ever read up to `last` before requesting another fill.
func (b *Buffer) underflowMapped(in *iobuf.Input, m device.Mapper) (int, error) {
	span, err := m.Map(len(b.winbuf), false)
	if err != nil {
		return 0, err
	}
	if len(span) == 0 {
		return 0, io.EOF
	}
	m.Advance(len(span))
	b.devPos += int64(len(span))
	in.SetWindow(span, 0, 0, len(span))
	return len(span), nil
}

// collapseCRLF rewrites raw in place, replacing every "\r\n" with "\n". A
// trailing lone '\r' is excluded from the result and reported via
// trailingCR so the caller can prefix it on the next fill.
func collapseCRLF(raw []byte) (out []byte, trailingCR bool) {
	w := 0
	for r := 0; r < len(raw); r++ {
		if raw[r] != '\r' {
			raw[w] = raw[r]
			w++
			continue
		}
		switch {
		case r+1 < len(raw) && raw[r+1] == '\n':
			raw[w] = '\n'
			w++
			r++
		case r+1 == len(raw):
			return raw[:w], true
		default:
			raw[w] = raw[r]
			w++
		}
	}
	return raw[:w], false
}

// ungetFail is the default, non-reversible behavior: once a character has
// left the window there is nothing to unget past First.
func (b *Buffer) ungetFail(in *iobuf.Input) error {
	return iobuf.ErrBadStream
}

const auxDivisor = 16

// overflow implements spec.md §4.4's write path: drain [first:curr) through
// the flush-buffer pipeline (CRLF expansion, ANSI scan + color dispatch),
// then reset the window so Curr has room again.
func (b *Buffer) overflow(out *iobuf.Output) error {
	if err := b.flushTie(); err != nil {
		return err
	}
	buf, first, curr, last := out.Window()
	if curr > first {
		if err := b.flushBuffer(buf[first:curr]); err != nil {
			return err
		}
	}
	out.SetWindow(buf, 0, 0, last)
	return nil
}

func (b *Buffer) sync(out *iobuf.Output) error {
	buf, first, curr, last := out.Window()
	if curr > first {
		if err := b.flushBuffer(buf[first:curr]); err != nil {
			return err
		}
		out.SetWindow(buf, 0, 0, last)
	}
	return b.dev.Flush()
}

// flushBuffer is spec.md §4.4's per-character pipeline: when neither crlf
// nor ctrl-esc apply, the block is written through unchanged; otherwise
// each character is copied into a bounded auxiliary window, expanding '\n'
// to "\r\n" and recognizing/forwarding-or-dropping ANSI escapes, flushing
// the auxiliary window to the device whenever it fills.
func (b *Buffer) flushBuffer(data []byte) error {
	if len(b.pendingSeq) > 0 {
		data = append(append([]byte(nil), b.pendingSeq...), data...)
		b.pendingSeq = nil
	}
	if b.mode&(iobuf.Text|iobuf.CtrlEsc) == 0 {
		return b.writeAll(data)
	}

	auxCap := len(b.winbuf) / auxDivisor
	if auxCap < minAuxSize {
		auxCap = minAuxSize
	}
	aux := make([]byte, 0, auxCap)
	flushAux := func() error {
		if len(aux) == 0 {
			return nil
		}
		if err := b.writeAll(aux); err != nil {
			return err
		}
		aux = aux[:0]
		return nil
	}
	appendAux := func(p []byte) error {
		for len(p) > 0 {
			if len(aux) == cap(aux) {
				if err := flushAux(); err != nil {
					return err
				}
			}
			n := copy(aux[len(aux):cap(aux)], p)
			aux = aux[:len(aux)+n]
			p = p[n:]
		}
		return nil
	}

	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case c == '\n' && b.mode&iobuf.Text != 0:
			if err := appendAux([]byte{'\r', '\n'}); err != nil {
				return err
			}
			i++
		case c == 0x1b && b.mode&iobuf.CtrlEsc != 0:
			n, complete := scanEscape(data[i:])
			if !complete {
				b.pendingSeq = append([]byte(nil), data[i:]...)
				i = len(data)
				continue
			}
			seq := data[i : i+n]
			if b.mode&iobuf.SkipCtrlEsc == 0 {
				if err := appendAux(seq); err != nil {
					return err
				}
			}
			if isSGR(seq) && b.colorSink != nil {
				b.colorSink.ColorEscape(parseSGRParams(seq))
			}
			i += n
		default:
			if err := appendAux(data[i : i+1]); err != nil {
				return err
			}
			i++
		}
	}
	return flushAux()
}

// writeAll retries the tail of p across partial device writes, per
// spec.md §9's propagation policy: "device-layer errors are recovered only
// for partial writes." A write that reports n==0 with a non-empty remainder
// is treated as a device error, resolving the Open Question in spec.md §9
// the way the spec directs. A Mappable device gets p copied straight into
// its own memory via Map/Advance (spec.md §4.2's mapped-span loop) instead
// of going through Write; the ordinary Write path below still runs for
// whatever a partial map leaves over.
func (b *Buffer) writeAll(p []byte) error {
	if m, ok := b.mapper(); ok {
		for len(p) > 0 {
			span, err := m.Map(len(p), true)
			if err != nil {
				return err
			}
			if len(span) == 0 {
				break
			}
			n := copy(span, p)
			m.Advance(n)
			b.devPos += int64(n)
			p = p[n:]
		}
	}
	for len(p) > 0 {
		n, err := b.dev.Write(p)
		if n > 0 {
			b.devPos += int64(n)
			p = p[n:]
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

// seekFromInput implements iobuf.Source.SeekImpl. Per spec.md §4.4 "if the
// target equals the current position, no I/O occurs": a same-position query
// reports the logical read position without disturbing whatever has already
// been fetched into the window.
func (b *Buffer) seekFromInput(in *iobuf.Input, off int64, whence int) (int64, error) {
	if whence == device.SeekCurrent && off == 0 {
		return in.Tell(b.devPos), nil
	}
	pos, err := b.seekRaw(off, whence)
	if err != nil {
		return 0, err
	}
	in.SetWindow(b.winbuf, 0, 0, 0)
	b.pendingCR = false
	return pos, nil
}

// seekFromOutput implements iobuf.Sink.SeekImpl.
func (b *Buffer) seekFromOutput(out *iobuf.Output, off int64, whence int) (int64, error) {
	if whence == device.SeekCurrent && off == 0 {
		return out.Tell(b.devPos), nil
	}
	buf, first, curr, last := out.Window()
	if curr > first {
		if err := b.flushBuffer(buf[first:curr]); err != nil {
			return 0, err
		}
	}
	pos, err := b.seekRaw(off, whence)
	if err != nil {
		return 0, err
	}
	out.SetWindow(b.winbuf, 0, 0, last)
	return pos, nil
}

// seekRaw is the shared device-repositioning logic from spec.md §4.4
// "Seek": z-compr and append streams refuse anything but a position query;
// the same-position query itself is handled by the caller before seekRaw is
// ever reached, so every path below performs a real device Seek.
func (b *Buffer) seekRaw(off int64, whence int) (int64, error) {
	if b.mode&iobuf.ZCompr != 0 {
		return 0, ErrCompressedSeek
	}
	if b.mode&iobuf.Append != 0 {
		return 0, ErrAppendSeek
	}
	pos, err := b.dev.Seek(off, whence)
	if err != nil {
		return 0, err
	}
	b.devPos = pos
	b.pendingSeq = nil
	return pos, nil
}
