// Package scvt implements the locale-independent, round-trip-correct
// numeric conversion core from spec.md §4.6-4.8: integer parsing/formatting
// in bases 2/8/10/16, and IEEE-754 float parsing/formatting including
// shortest-round-trip and hex-float. The package is a pure function layer;
// it never logs and never blocks.
package scvt

// Base selects the digit radix used by the integer codec.
type Base int

const (
	Base2  Base = 2
	Base8  Base = 8
	Base10 Base = 10
	Base16 Base = 16
)

// Adjust controls where fill characters go relative to a formatted value's
// sign/prefix, per spec.md §4.6.
type Adjust int

const (
	AdjustRight Adjust = iota
	AdjustLeft
	AdjustInternal
)

// Flag is the fmt_opts bitset from spec.md §6.
type Flag uint32

const (
	FlagSign          Flag = 1 << iota // emit '+' for non-negative values
	FlagAlternate                      // 0b/0x prefix, leading 0 for nonzero octal
	FlagUppercase                      // uppercase digits/prefix/exponent marker
	FlagLeadingZeroes                  // zero-fill between prefix and digits
	FlagShowPoint                      // float: force a decimal point
	FlagLocalize                       // apply Grouping/GroupSep
	FlagDebug                          // debug-format bit; no formatter in this package reads it
	FlagJSONCompat                     // json-compat bit; no formatter in this package reads it
)

// Options is spec.md §6's fmt_opts: flags, width, precision, and fill
// character, plus the grouping table used when FlagLocalize is set.
type Options struct {
	Base     Base
	Adjust   Adjust
	Flags    Flag
	Width    int
	Prec     int // -1 means "unspecified" (shortest round-trip for floats)
	Fill     byte
	Grouping []int // run-length group sizes from the least-significant end; last repeats; 0 disables
	GroupSep byte

	// FloatStyle is the layout FormatFloat uses; the zero value is
	// StyleShortest.
	FloatStyle FloatStyle
}

// DefaultOptions returns the zero-configuration option set: base 10, right
// adjust, space fill, no explicit precision, no grouping.
func DefaultOptions() Options {
	return Options{Base: Base10, Adjust: AdjustRight, Fill: ' ', Prec: -1, GroupSep: ','}
}
