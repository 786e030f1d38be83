package flatbuf

import (
	"io"
	"testing"

	"github.com/vireling/uxs/lib/device"
)

func TestReadWholeSpan(t *testing.T) {
	v := New([]byte("hello"))
	r := v.Reader()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("read = %q, want %q", got, "hello")
	}
}

func TestSeekWithinSpan(t *testing.T) {
	v := New([]byte("0123456789"))
	r := v.Reader()
	if _, err := r.Seek(3, device.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	b, ok := r.Get()
	if !ok || b != '3' {
		t.Errorf("Get() = %q,%v want '3',true", b, ok)
	}
	if _, err := r.Seek(-2, device.SeekEnd); err != nil {
		t.Fatalf("Seek end: %v", err)
	}
	b, ok = r.Get()
	if !ok || b != '8' {
		t.Errorf("Get() = %q,%v want '8',true", b, ok)
	}
}

func TestSeekOutOfRange(t *testing.T) {
	v := New([]byte("abc"))
	r := v.Reader()
	if _, err := r.Seek(10, device.SeekStart); err == nil {
		t.Errorf("expected error seeking past end")
	}
}

func TestEmptyView(t *testing.T) {
	v := New(nil)
	r := v.Reader()
	if _, ok := r.Get(); ok {
		t.Errorf("Get() on empty view should fail")
	}
}
