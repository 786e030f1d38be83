package scvt

import (
	"errors"
	"io"
)

// ErrSyntax is returned when no digits were consumed at all.
var ErrSyntax = errors.New("scvt: invalid numeric syntax")

// ErrRange is returned when the accumulated value overflows the target
// width. Per spec.md §7, an overflowing parse reports zero bytes consumed.
var ErrRange = errors.New("scvt: value out of range")

func digitVal(c byte, base int) (int, bool) {
	var d int
	switch {
	case c >= '0' && c <= '9':
		d = int(c - '0')
	case c >= 'a' && c <= 'z':
		d = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		d = int(c-'A') + 10
	default:
		return 0, false
	}
	if d >= base {
		return 0, false
	}
	return d, true
}

func digitChar(d byte, upper bool) byte {
	if d < 10 {
		return '0' + d
	}
	if upper {
		return 'A' + (d - 10)
	}
	return 'a' + (d - 10)
}

// ParseUint parses an unsigned integer in base from the start of s,
// stopping at the first byte outside the digit set. consumed is 0 on
// either a completely absent digit run or a Horner-accumulator overflow
// (detected by the new value not being representable in bitSize bits),
// per spec.md §4.6/§7.
func ParseUint(s string, base int, bitSize int) (value uint64, consumed int, err error) {
	if bitSize <= 0 || bitSize > 64 {
		bitSize = 64
	}
	var limit uint64 = ^uint64(0)
	if bitSize < 64 {
		limit = (uint64(1) << uint(bitSize)) - 1
	}

	var v uint64
	i := 0
	for i < len(s) {
		d, ok := digitVal(s[i], base)
		if !ok {
			break
		}
		if uint64(d) > limit || v > (limit-uint64(d))/uint64(base) {
			return 0, 0, ErrRange
		}
		v = v*uint64(base) + uint64(d)
		i++
	}
	if i == 0 {
		return 0, 0, ErrSyntax
	}
	return v, i, nil
}

// ParseInt parses a signed integer: optional leading spaces, an optional
// sign, then a ParseUint-style digit run. The accumulated magnitude must
// satisfy |v| <= pos-limit + (negative ? 1 : 0), per spec.md §4.6.
func ParseInt(s string, base int, bitSize int) (value int64, consumed int, err error) {
	if bitSize <= 0 || bitSize > 64 {
		bitSize = 64
	}
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	var v uint64
	j := i
	for j < len(s) {
		d, ok := digitVal(s[j], base)
		if !ok {
			break
		}
		if v > (^uint64(0)-uint64(d))/uint64(base) {
			return 0, 0, ErrRange
		}
		v = v*uint64(base) + uint64(d)
		j++
	}
	if j == i {
		return 0, 0, ErrSyntax
	}

	posLimit := (uint64(1) << uint(bitSize-1)) - 1
	limit := posLimit
	if neg {
		limit = posLimit + 1
	}
	if v > limit {
		return 0, 0, ErrRange
	}
	val := int64(v)
	if neg {
		val = -val
	}
	return val, j, nil
}

// FormatUint renders value in opts.Base with the width/fill/grouping/prefix
// rules from spec.md §4.6.
func FormatUint(value uint64, opts Options) string {
	base := int(opts.Base)
	if base == 0 {
		base = 10
	}
	digits := emitDigits(value, base, opts.Flags&FlagUppercase != 0)
	if opts.Flags&FlagLocalize != 0 {
		digits = applyGrouping(digits, opts)
	}
	prefix := altPrefix(opts, base, value != 0)
	return pad(prefix, digits, opts)
}

// FormatInt renders a signed value; magnitude is computed without
// overflowing at math.MinInt64 by working in uint64 throughout.
func FormatInt(value int64, opts Options) string {
	base := int(opts.Base)
	if base == 0 {
		base = 10
	}
	neg := value < 0
	var mag uint64
	if neg {
		mag = uint64(-(value + 1)) + 1
	} else {
		mag = uint64(value)
	}
	digits := emitDigits(mag, base, opts.Flags&FlagUppercase != 0)
	if opts.Flags&FlagLocalize != 0 {
		digits = applyGrouping(digits, opts)
	}

	sign := ""
	switch {
	case neg:
		sign = "-"
	case opts.Flags&FlagSign != 0:
		sign = "+"
	}
	prefix := sign + altPrefix(opts, base, mag != 0)
	return pad(prefix, digits, opts)
}

// WriteInt and WriteUint are the io.Writer-facing equivalents, for use
// with any membuffer-style sink (lib/stringbuf, lib/devbuf, a plain
// bytes.Buffer).
func WriteInt(w io.Writer, value int64, opts Options) (int, error) {
	return io.WriteString(w, FormatInt(value, opts))
}

func WriteUint(w io.Writer, value uint64, opts Options) (int, error) {
	return io.WriteString(w, FormatUint(value, opts))
}

func emitDigits(value uint64, base int, upper bool) string {
	var buf [64]byte
	pos := len(buf)
	if value == 0 {
		pos--
		buf[pos] = '0'
		return string(buf[pos:])
	}
	for value > 0 {
		d := byte(value % uint64(base))
		pos--
		buf[pos] = digitChar(d, upper)
		value /= uint64(base)
	}
	return string(buf[pos:])
}

func altPrefix(opts Options, base int, nonzero bool) string {
	if opts.Flags&FlagAlternate == 0 {
		return ""
	}
	upper := opts.Flags&FlagUppercase != 0
	switch base {
	case 2:
		if upper {
			return "0B"
		}
		return "0b"
	case 8:
		if nonzero {
			return "0"
		}
		return ""
	case 16:
		if upper {
			return "0X"
		}
		return "0x"
	default:
		return ""
	}
}

// applyGrouping inserts opts.GroupSep every opts.Grouping[i] digits,
// counted from the least-significant end; the final element of Grouping
// repeats indefinitely, and a 0 element disables further grouping for the
// remaining (more significant) digits.
func applyGrouping(digits string, opts Options) string {
	if len(opts.Grouping) == 0 {
		return digits
	}
	sep := opts.GroupSep
	if sep == 0 {
		sep = ','
	}
	n := len(digits)
	out := make([]byte, 0, n+n/2)
	gi := 0
	size := opts.Grouping[0]
	count := 0
	for i := n - 1; i >= 0; i-- {
		if size > 0 && count == size {
			out = append(out, sep)
			count = 0
			if gi+1 < len(opts.Grouping) {
				gi++
				size = opts.Grouping[gi]
			}
		}
		out = append(out, digits[i])
		count++
		if size == 0 {
			// grouping disabled from here on: copy the remaining
			// (more significant) digits verbatim and stop.
			for i--; i >= 0; i-- {
				out = append(out, digits[i])
			}
			break
		}
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return string(out)
}

// pad composes the final string from prefix+digits and opts.Width/Fill/
// Adjust, per spec.md §4.6's width-adjustment rules.
func pad(prefix, digits string, opts Options) string {
	total := len(prefix) + len(digits)
	if opts.Width <= total {
		return prefix + digits
	}
	fill := opts.Fill
	if fill == 0 {
		fill = ' '
	}
	gap := opts.Width - total
	padding := make([]byte, gap)

	switch {
	case opts.Adjust == AdjustInternal || opts.Flags&FlagLeadingZeroes != 0:
		c := fill
		if opts.Flags&FlagLeadingZeroes != 0 {
			c = '0'
		}
		for i := range padding {
			padding[i] = c
		}
		return prefix + string(padding) + digits
	case opts.Adjust == AdjustLeft:
		for i := range padding {
			padding[i] = fill
		}
		return prefix + digits + string(padding)
	default: // AdjustRight
		for i := range padding {
			padding[i] = fill
		}
		return string(padding) + prefix + digits
	}
}
