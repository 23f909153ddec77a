// Package sfx provides the audible scan confirmation. Playback is
// best-effort; a device without a bell stays silent and nothing fails.
package sfx

import (
	"io"
	"os"
)

// Beeper emits an audible confirmation.
type Beeper interface {
	Beep()
}

// TerminalBeeper rings the terminal bell.
type TerminalBeeper struct {
	W io.Writer
}

func NewTerminalBeeper() *TerminalBeeper { return &TerminalBeeper{W: os.Stdout} }

func (b *TerminalBeeper) Beep() {
	if b.W == nil {
		return
	}
	_, _ = b.W.Write([]byte("\a"))
}

// NopBeeper is silent. Used in tests and non-interactive runs.
type NopBeeper struct{}

func (NopBeeper) Beep() {}
