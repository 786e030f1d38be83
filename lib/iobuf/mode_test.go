package iobuf

import "testing"

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
	}{
		{"r", In},
		{"w", Out | Create | Truncate},
		{"a", Out | Create | Append},
		{"r+", In | Out},
		{"w+", Out | Create | Truncate | In},
		{"wx", Out | Create | Truncate | Exclusive},
		{"rt", In | Text},
		{"rb", In},
		{"wz", Out | Create | Truncate | ZCompr},
		{"wz6", Out | Create | Truncate | ZCompr},
		{"q", 0},
	}
	for _, c := range cases {
		if got := ParseMode(c.in); got != c.want {
			t.Errorf("ParseMode(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestCompressionLevel(t *testing.T) {
	if lvl, ok := CompressionLevel("wz6"); !ok || lvl != 6 {
		t.Errorf("CompressionLevel(wz6) = %d,%v, want 6,true", lvl, ok)
	}
	if _, ok := CompressionLevel("wz"); ok {
		t.Errorf("CompressionLevel(wz) should have no digit")
	}
	if _, ok := CompressionLevel("w"); ok {
		t.Errorf("CompressionLevel(w) should report ok=false")
	}
}

func TestReverseGroups(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7}
	ReverseGroups(buf, 2)
	want := []byte{2, 1, 4, 3, 6, 5, 7}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("ReverseGroups = %v, want %v", buf, want)
		}
	}
}

func TestState(t *testing.T) {
	var s State
	if !s.Good() {
		t.Fatal("zero State should be Good")
	}
	s.SetBad()
	if !s.Bad() || !s.Fail() {
		t.Fatalf("SetBad should imply Fail: %v", s)
	}
	s.Clear()
	if !s.Good() {
		t.Fatal("Clear should restore Good")
	}
}
