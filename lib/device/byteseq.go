package device

import (
	"github.com/vireling/uxs/lib/bytestore"
)

// ByteSeqDevice adapts a bytestore.Store to the Device interface, per
// spec.md §4.2: Read/Write are mapped-span loops over the store's Map/
// Advance path rather than going through an intermediate copy buffer.
type ByteSeqDevice struct {
	store    *bytestore.Store
	cur      *bytestore.Cursor
	readOnly bool
}

// NewByteSeqDevice wraps an existing, writable Store.
func NewByteSeqDevice(s *bytestore.Store) *ByteSeqDevice {
	return &ByteSeqDevice{store: s, cur: bytestore.NewCursor(s)}
}

// NewByteSeqDeviceReadOnly wraps data as a read-only view, refusing Write,
// Map(write=true), and Truncate per spec.md §4.2.
func NewByteSeqDeviceReadOnly(data []byte) *ByteSeqDevice {
	s := bytestore.NewReadOnly(data)
	return &ByteSeqDevice{store: s, cur: bytestore.NewCursor(s), readOnly: true}
}

func (d *ByteSeqDevice) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		span, err := d.cur.Map(len(p)-total, false)
		if err != nil {
			return total, err
		}
		if len(span) == 0 {
			break
		}
		n := copy(p[total:], span)
		d.cur.Advance(n)
		total += n
	}
	return total, nil
}

func (d *ByteSeqDevice) Write(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		span, err := d.cur.Map(len(p)-total, true)
		if err != nil {
			return total, err
		}
		if len(span) == 0 {
			break
		}
		n := copy(span, p[total:])
		d.cur.Advance(n)
		total += n
	}
	return total, nil
}

func (d *ByteSeqDevice) Seek(off int64, whence int) (int64, error) {
	return d.cur.Seek(off, whence)
}

func (d *ByteSeqDevice) Flush() error { return nil }
func (d *ByteSeqDevice) Close() error { return nil }

func (d *ByteSeqDevice) Capabilities() Capability {
	c := Seekable | Mappable
	if d.readOnly {
		c |= ReadOnly
	}
	return c
}

// Map/Advance satisfy the Mapper capability directly against the store.
func (d *ByteSeqDevice) Map(size int, write bool) ([]byte, error) {
	return d.cur.Map(size, write)
}

func (d *ByteSeqDevice) Advance(n int) { d.cur.Advance(n) }

// Store exposes the backing store, e.g. for Truncate or Bytes().
func (d *ByteSeqDevice) Store() *bytestore.Store { return d.store }
