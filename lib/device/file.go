package device

import (
	"fmt"
	"os"

	"github.com/vireling/uxs/lib/iobuf"
)

// FileDevice wraps an *os.File as a Device.
type FileDevice struct {
	f        *os.File
	readOnly bool
	inherit  bool // stdio: don't close the underlying fd on Close
}

// OpenFile opens path according to mode (an iobuf.Mode produced by
// iobuf.ParseMode or composed directly).
func OpenFile(path string, mode iobuf.Mode) (*FileDevice, error) {
	var flag int
	switch {
	case mode&iobuf.Out == 0:
		flag = os.O_RDONLY
	case mode&iobuf.In != 0:
		flag = os.O_RDWR
	default:
		flag = os.O_WRONLY
	}
	if mode&iobuf.Create != 0 {
		flag |= os.O_CREATE
	}
	if mode&iobuf.Truncate != 0 {
		flag |= os.O_TRUNC
	}
	if mode&iobuf.Append != 0 {
		flag |= os.O_APPEND
	}
	if mode&iobuf.Exclusive != 0 {
		flag |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("device: open %s: %w", path, err)
	}
	return &FileDevice{f: f, readOnly: mode&iobuf.Out == 0}, nil
}

// NewStdFile wraps an already-open *os.File (stdin/stdout/stderr) without
// taking ownership of the descriptor: Close never closes it,
// per spec.md §9 "stdio streams ... must not close the inherited
// descriptors."
func NewStdFile(f *os.File, readOnly bool) *FileDevice {
	return &FileDevice{f: f, readOnly: readOnly, inherit: true}
}

func (d *FileDevice) Read(p []byte) (int, error)  { return d.f.Read(p) }
func (d *FileDevice) Write(p []byte) (int, error) { return d.f.Write(p) }
func (d *FileDevice) Seek(off int64, whence int) (int64, error) {
	return d.f.Seek(off, whence)
}
// Flush durably commits previously written bytes. Inherited stdio
// descriptors skip fsync: stdout/stderr are usually a pipe or terminal,
// where Sync commonly fails with "invalid argument" and buys nothing a
// plain write hasn't already committed to the OS side of the pipe.
func (d *FileDevice) Flush() error {
	if d.inherit {
		return nil
	}
	return d.f.Sync()
}

func (d *FileDevice) Close() error {
	if d.inherit {
		return nil
	}
	return d.f.Close()
}

func (d *FileDevice) Capabilities() Capability {
	c := Seekable
	if d.readOnly {
		c |= ReadOnly
	}
	return c
}
