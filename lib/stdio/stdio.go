// Package stdio installs the three process-wide character streams from
// spec.md §6: Stdin, Stdout, Stderr (plus a Log alias for Stderr), wired
// with the platform's native newline convention, terminal-aware ANSI
// handling, and the stdin/stdout and stderr/stdout tie relationships.
package stdio

import (
	"os"
	"runtime"

	"github.com/mattn/go-isatty"

	"github.com/vireling/uxs/lib/device"
	"github.com/vireling/uxs/lib/devbuf"
	"github.com/vireling/uxs/lib/iobuf"
)

// Stdin, Stdout, Stderr are the preinstalled process streams. Log is an
// alias for Stderr, matching spec.md §6's "plus a log alias equal to
// stderr."
var (
	Stdin  *devbuf.Buffer
	Stdout *devbuf.Buffer
	Stderr *devbuf.Buffer
	Log    *devbuf.Buffer
)

func init() {
	Stdin, Stdout, Stderr = newStreams()
	Log = Stderr
}

// nativeCRLF is true on platforms whose native line ending is CRLF;
// spec.md §6 sets `text` on all three stdio streams by default there.
const nativeCRLF = runtime.GOOS == "windows"

func newStreams() (in, out, errs *devbuf.Buffer) {
	var base iobuf.Mode
	if nativeCRLF {
		base = iobuf.Text
	}

	inDev := device.NewStdFile(os.Stdin, true)
	outDev := device.NewStdFile(os.Stdout, false)
	errDev := device.NewStdFile(os.Stderr, false)

	in = devbuf.New(inDev, base|iobuf.In, 0)
	out = devbuf.New(outDev, base|terminalMode(os.Stdout.Fd())|iobuf.Out, 0)
	errs = devbuf.New(errDev, base|terminalMode(os.Stderr.Fd())|iobuf.Out, 0)

	// spec.md §6: "stdin is tied to stdout; stderr is tied to stdout."
	in.Tie(out)
	errs.Tie(out)
	return in, out, errs
}

// terminalMode sets ctrl-esc when fd is attached to a terminal, and adds
// skip-ctrl-esc when it is not, so SGR escapes are suppressed for
// redirected output per spec.md §6.
func terminalMode(fd uintptr) iobuf.Mode {
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return iobuf.CtrlEsc
	}
	return iobuf.CtrlEsc | iobuf.SkipCtrlEsc
}
