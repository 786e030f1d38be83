package scvt

import "testing"

func TestParseIntLeadingSpaceAndSign(t *testing.T) {
	v, n, err := ParseInt(" +123abc", 10, 32)
	if err != nil {
		t.Fatalf("ParseInt: %v", err)
	}
	if v != 123 {
		t.Errorf("value = %d, want 123", v)
	}
	if n != 5 {
		t.Errorf("consumed = %d, want 5", n)
	}
}

func TestParseIntOverflowNoConsumption(t *testing.T) {
	_, n, err := ParseInt("99999999999", 10, 8)
	if err == nil {
		t.Fatal("expected overflow error")
	}
	if n != 0 {
		t.Errorf("consumed = %d, want 0 on overflow", n)
	}
}

func TestParseIntNoDigits(t *testing.T) {
	_, n, err := ParseInt("abc", 10, 32)
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if n != 0 {
		t.Errorf("consumed = %d, want 0", n)
	}
}

func TestFormatIntWidthFillInternal(t *testing.T) {
	opts := Options{Base: Base10, Adjust: AdjustInternal, Width: 8, Fill: '*'}
	got := FormatInt(-42, opts)
	if want := "-*****42"; got != want {
		t.Errorf("FormatInt = %q, want %q", got, want)
	}
}

func TestFormatIntAlternatePrefixes(t *testing.T) {
	cases := []struct {
		base Base
		want string
	}{
		{Base2, "0b101010"},
		{Base8, "052"},
		{Base16, "0x2a"},
	}
	for _, c := range cases {
		opts := Options{Base: c.base, Flags: FlagAlternate}
		if got := FormatUint(42, opts); got != c.want {
			t.Errorf("base %d: FormatUint = %q, want %q", c.base, got, c.want)
		}
	}
}

func TestIntRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 42, -42, 123456789, -987654321}
	for _, base := range []int{2, 8, 10, 16} {
		for _, v := range values {
			opts := Options{Base: Base(base)}
			s := FormatInt(v, opts)
			got, n, err := ParseInt(s, base, 64)
			if err != nil {
				t.Fatalf("base %d value %d: ParseInt(%q): %v", base, v, s, err)
			}
			if n != len(s) {
				t.Errorf("base %d value %d: consumed %d, want %d", base, v, n, len(s))
			}
			if got != v {
				t.Errorf("base %d value %d: round-trip got %d", base, v, got)
			}
		}
	}
}

func TestGrouping(t *testing.T) {
	opts := Options{Base: Base10, Flags: FlagLocalize, Grouping: []int{3}, GroupSep: ','}
	if got, want := FormatUint(1234567, opts), "1,234,567"; got != want {
		t.Errorf("FormatUint = %q, want %q", got, want)
	}
}

func TestGroupingZeroDisables(t *testing.T) {
	opts := Options{Base: Base10, Flags: FlagLocalize, Grouping: []int{0}, GroupSep: ','}
	if got, want := FormatUint(1234567, opts), "1234567"; got != want {
		t.Errorf("FormatUint = %q, want %q", got, want)
	}
}
