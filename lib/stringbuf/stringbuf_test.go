package stringbuf

import (
	"testing"

	"github.com/vireling/uxs/lib/device"
)

func TestWriteGrows(t *testing.T) {
	b := New()
	w := b.Writer()
	payload := make([]byte, 500)
	for i := range payload {
		payload[i] = byte('a' + i%26)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := b.Bytes(); string(got) != string(payload) {
		t.Errorf("content mismatch, len got=%d want=%d", len(got), len(payload))
	}
}

func TestSeekPastEndZeroFills(t *testing.T) {
	b := New()
	w := b.Writer()
	if _, err := w.Write([]byte("ab")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := w.Seek(5, device.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if _, err := w.Write([]byte("c")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := []byte{'a', 'b', 0, 0, 0, 'c'}
	got := b.Bytes()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (% x)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	b := New()
	w := b.Writer()
	if _, err := w.Write([]byte("hello world")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := b.Truncate(5); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if string(b.Bytes()) != "hello" {
		t.Errorf("Bytes() = %q, want %q", b.Bytes(), "hello")
	}
}
