package devbuf

import (
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/vireling/uxs/lib/device"
)

// compressDevice wraps a device.Device so that bytes crossing it are always
// deflate-compressed; the devbuf.Buffer layered on top never sees the
// compressed bytes, satisfying spec.md §4.4's "compression ring": "bytes
// entering/leaving the device are always compressed; bytes between the
// character window and the staging area are plaintext."
//
// Grounded on github.com/klauspost/compress/flate (see SPEC_FULL.md §4):
// the ecosystem's faster drop-in for compress/flate.
type compressDevice struct {
	inner device.Device
	level int
	zr    io.ReadCloser
	zw    *flate.Writer
}

func newCompressDevice(inner device.Device, level int) *compressDevice {
	if level == 0 {
		level = flate.DefaultCompression
	}
	return &compressDevice{inner: inner, level: level}
}

func (d *compressDevice) Read(p []byte) (int, error) {
	if d.zr == nil {
		d.zr = flate.NewReader(d.inner)
	}
	n, err := d.zr.Read(p)
	if err == io.EOF && n > 0 {
		// spec.md §5: "partial inflate at EOF is tolerated."
		return n, nil
	}
	return n, err
}

func (d *compressDevice) Write(p []byte) (int, error) {
	if d.zw == nil {
		w, err := flate.NewWriter(d.inner, d.level)
		if err != nil {
			return 0, err
		}
		d.zw = w
	}
	return d.zw.Write(p)
}

// Seek always fails on a compressed device, per spec.md §9's resolution of
// the open question: "this spec requires it to fail."
func (d *compressDevice) Seek(off int64, whence int) (int64, error) {
	return 0, ErrCompressedSeek
}

func (d *compressDevice) Flush() error {
	if d.zw != nil {
		if err := d.zw.Flush(); err != nil {
			return err
		}
	}
	return d.inner.Flush()
}

// Close emits the deflate terminator (spec.md §4.4 "finish is called on
// close") before releasing the wrapped device.
func (d *compressDevice) Close() error {
	if d.zw != nil {
		if err := d.zw.Close(); err != nil {
			d.inner.Close()
			return err
		}
	}
	if d.zr != nil {
		d.zr.Close()
	}
	return d.inner.Close()
}
