package stdio

import (
	"os"
	"testing"

	"github.com/vireling/uxs/lib/iobuf"
)

func TestTerminalModeOnPipeSkipsCtrlEsc(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	m := terminalMode(w.Fd())
	if m&iobuf.CtrlEsc == 0 {
		t.Errorf("expected CtrlEsc set even when not a terminal")
	}
	if m&iobuf.SkipCtrlEsc == 0 {
		t.Errorf("expected SkipCtrlEsc set for a non-terminal fd")
	}
}

func TestPreinstalledStreamsNotNil(t *testing.T) {
	if Stdin == nil || Stdout == nil || Stderr == nil || Log == nil {
		t.Fatal("preinstalled streams must be non-nil after package init")
	}
	if Log != Stderr {
		t.Errorf("Log must alias Stderr")
	}
}
