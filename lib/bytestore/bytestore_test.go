package bytestore

import (
	"bytes"
	"io"
	"testing"
)

// TestRoundTrip covers spec.md §8 invariant 4 and scenario 7: write N bytes,
// seek to 0, read back N bytes, then seek-to-end reports N.
func TestRoundTrip(t *testing.T) {
	s := New()
	c := NewCursor(s)

	n, err := c.Write([]byte{1, 2, 3, 4, 5})
	if err != nil || n != 5 {
		t.Fatalf("Write = %d,%v, want 5,nil", n, err)
	}

	if _, err := c.Seek(2, SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if _, err := c.Write([]byte{9, 9}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := c.Seek(0, SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	got := make([]byte, 5)
	if _, err := io.ReadFull(c, got); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	want := []byte{1, 2, 9, 9, 5}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	end, err := c.Seek(0, SeekEnd)
	if err != nil || end != 5 {
		t.Fatalf("Seek end = %d,%v, want 5,nil", end, err)
	}
}

func TestWriteAcrossChunkBoundary(t *testing.T) {
	s := New()
	c := NewCursor(s)
	// Force several chunk growths by writing more than the initial chunk size.
	data := bytes.Repeat([]byte("abcdefgh"), 200)
	if _, err := c.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if s.Len() != int64(len(data)) {
		t.Fatalf("Len = %d, want %d", s.Len(), len(data))
	}
	if !bytes.Equal(s.Bytes(), data) {
		t.Fatal("Bytes() mismatch after multi-chunk write")
	}
	if len(s.chunks) < 2 {
		t.Fatalf("expected growth across multiple chunks, got %d", len(s.chunks))
	}
}

func TestSeekPastEndExtends(t *testing.T) {
	s := New()
	c := NewCursor(s)
	c.Write([]byte("ab"))
	if _, err := c.Seek(5, SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	c.Write([]byte("z"))
	want := []byte{'a', 'b', 0, 0, 0, 'z'}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("got %v, want %v", s.Bytes(), want)
	}
}

func TestSeekPastEndReadOnlyClamps(t *testing.T) {
	s := NewReadOnly([]byte("abc"))
	c := NewCursor(s)
	pos, err := c.Seek(100, SeekStart)
	if err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if pos != 3 {
		t.Fatalf("Seek past end on read-only store should clamp to size, got %d", pos)
	}
}

func TestReadOnlyWriteFails(t *testing.T) {
	s := NewReadOnly([]byte("abc"))
	c := NewCursor(s)
	if _, err := c.Write([]byte("x")); err != ErrReadOnly {
		t.Fatalf("Write on read-only store = %v, want ErrReadOnly", err)
	}
}

func TestMapAdvanceWrite(t *testing.T) {
	s := New()
	c := NewCursor(s)
	span, err := c.Map(4, true)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(span) == 0 {
		t.Fatal("expected non-empty mappable span")
	}
	copy(span, []byte{'h', 'i'})
	c.Advance(2)
	if s.Len() != 2 {
		t.Fatalf("Len after Advance = %d, want 2", s.Len())
	}
	if !bytes.Equal(s.Bytes(), []byte("hi")) {
		t.Fatalf("Bytes = %q, want %q", s.Bytes(), "hi")
	}
}

func TestMapRead(t *testing.T) {
	s := New()
	c := NewCursor(s)
	c.Write([]byte("hello"))
	rc := NewCursor(s)
	span, err := rc.Map(0, false)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if string(span) != "hello" {
		t.Fatalf("Map read span = %q, want %q", span, "hello")
	}
	rc.Advance(len(span))
	if _, err := rc.Map(0, false); err != nil {
		t.Fatalf("Map at EOF: %v", err)
	}
}

func TestTruncate(t *testing.T) {
	s := New()
	c := NewCursor(s)
	c.Write([]byte("hello world"))
	if err := s.Truncate(5); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if s.Len() != 5 {
		t.Fatalf("Len = %d, want 5", s.Len())
	}
	if !bytes.Equal(s.Bytes(), []byte("hello")) {
		t.Fatalf("Bytes = %q", s.Bytes())
	}
}
