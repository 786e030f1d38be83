// Package iobuf provides the character-typed cursor primitives shared by
// every stream in this module: the Mode/State bitfields, the Input pull
// cursor, and the Output push cursor. Device-specific behavior (CRLF, ANSI,
// compression) lives one layer up in package devbuf; iobuf only knows about
// first/curr/last pointers and the underflow/overflow hooks a subclass must
// supply.
package iobuf

import "strings"

// Mode is the bitfield controlling how a stream treats its underlying
// device. Flags are independent unless documented otherwise.
type Mode uint32

const (
	In           Mode = 1 << iota // readable
	Out                           // writable
	Append                        // all writes go to the end of the device
	Truncate                      // existing content is discarded on open
	Create                        // create the device if absent
	Exclusive                     // fail if the device already exists
	Text                          // CRLF <-> LF translation
	CtrlEsc                       // recognize ESC [ ... final ANSI sequences
	SkipCtrlEsc                   // suppress recognized sequences instead of forwarding them
	ZCompr                        // deflate on write, inflate on read
	InvertEndian                  // byte-swap element groups on read/write
)

// ParseMode scans a POSIX-like mode string ("r", "w+", "ab", "wtz6", ...)
// character by character, the way fopen(3) mode strings are scanned.
// Unknown characters are ignored, matching spec.md §6.
func ParseMode(s string) Mode {
	var m Mode
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'r':
			m |= In
		case 'w':
			m |= Out | Create | Truncate
		case 'a':
			m |= Out | Create | Append
		case '+':
			if m&In != 0 {
				m |= Out
			} else if m&Out != 0 {
				m |= In
			}
		case 'x':
			m |= Exclusive
		case 't':
			m |= Text
		case 'b':
			m &^= Text
		case 'z':
			m |= ZCompr
			// an optional compression-level digit may follow; it is consumed
			// by the caller via CompressionLevel, not stored in Mode.
			for i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
				i++
			}
		}
	}
	return m
}

// CompressionLevel extracts the optional 0-9 digit following 'z' in a mode
// string, returning ok=false when no digit was supplied.
func CompressionLevel(s string) (level int, ok bool) {
	idx := strings.IndexByte(s, 'z')
	if idx < 0 || idx+1 >= len(s) || s[idx+1] < '0' || s[idx+1] > '9' {
		return 0, false
	}
	return int(s[idx+1] - '0'), true
}

func (m Mode) String() string {
	var b strings.Builder
	pairs := []struct {
		f Mode
		n string
	}{
		{In, "in"}, {Out, "out"}, {Append, "append"}, {Truncate, "truncate"},
		{Create, "create"}, {Exclusive, "exclusive"}, {Text, "text"},
		{CtrlEsc, "ctrl-esc"}, {SkipCtrlEsc, "skip-ctrl-esc"}, {ZCompr, "z-compr"},
		{InvertEndian, "invert-endian"},
	}
	for _, p := range pairs {
		if m&p.f != 0 {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(p.n)
		}
	}
	if b.Len() == 0 {
		return "none"
	}
	return b.String()
}
