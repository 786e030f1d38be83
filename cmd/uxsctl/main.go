// Command uxsctl is a thin demonstration binary over the uxs stream stack
// and numeric codec. It is glue, not a general-purpose tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vireling/uxs/lib/device"
	"github.com/vireling/uxs/lib/devbuf"
	"github.com/vireling/uxs/lib/iobuf"
	"github.com/vireling/uxs/lib/scvt"
)

func main() {
	var (
		mode    = flag.String("mode", "text", "stream mode: text or binary")
		ctrlEsc = flag.Bool("ctrl-esc", true, "recognize ANSI/SGR escape sequences on output")
		zcompr  = flag.Bool("z", false, "deflate-compress the device stream")
		format  = flag.String("format", "", "format a number (decimal) and exit: -format 3.14159")
		parse   = flag.String("parse", "", "parse a number and print its round-tripped form: -parse 0x2a")
		base    = flag.Int("base", 10, "integer base used by -parse when the value has no 0x/0b/0 prefix")
	)
	flag.Parse()

	if *format != "" {
		runFormat(*format)
		return
	}
	if *parse != "" {
		runParse(*parse, *base)
		return
	}

	m := iobuf.Out
	if *mode == "text" {
		m |= iobuf.Text
	}
	if *ctrlEsc {
		m |= iobuf.CtrlEsc
	}
	if *zcompr {
		m |= iobuf.ZCompr
	}

	dev := device.NewStdFile(os.Stdout, false)
	buf := devbuf.New(dev, m, 0)
	defer buf.Close()

	out, err := buf.Writer()
	if err != nil {
		fmt.Fprintln(os.Stderr, "uxsctl:", err)
		os.Exit(1)
	}
	if _, err := out.Write([]byte("uxsctl: stream ready (mode=" + *mode + ")\n")); err != nil {
		fmt.Fprintln(os.Stderr, "uxsctl:", err)
		os.Exit(1)
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "uxsctl:", err)
		os.Exit(1)
	}
}

func runFormat(s string) {
	v, _, err := scvt.ParseFloat(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, "uxsctl: format:", err)
		os.Exit(1)
	}
	fmt.Println(scvt.FormatFloat(v, scvt.DefaultOptions()))
}

func runParse(s string, base int) {
	digits := s
	switch {
	case len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X"):
		base, digits = 16, s[2:]
	case len(s) > 2 && (s[:2] == "0b" || s[:2] == "0B"):
		base, digits = 2, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, digits = 8, s[1:]
	}
	v, n, err := scvt.ParseInt(digits, base, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "uxsctl: parse:", err)
		os.Exit(1)
	}
	if n != len(digits) {
		fmt.Fprintf(os.Stderr, "uxsctl: parse: trailing input %q ignored\n", digits[n:])
	}
	opts := scvt.Options{Base: scvt.Base(base)}
	if len(digits) != len(s) {
		opts.Flags = scvt.FlagAlternate
	}
	fmt.Println(scvt.FormatInt(v, opts))
}
