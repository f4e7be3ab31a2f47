package terminal

import (
	"io"
	"os"
)

// EmergencyReset attempts to restore the terminal to a sane state
// For panic recovery paths where Close cannot run; errors are ignored
func EmergencyReset(w io.Writer) {
	for _, seq := range [][]byte{
		csiMouseMotionOff,
		csiMouseDragOff,
		csiMouseClickOff,
		csiMouseSGROff,
		csiBracketedPasteOff,
		csiCursorShow,
		csiAltScreenExit,
		csiSGR0,
		csiAutoWrapOn,
		csiRIS,
	} {
		_, _ = w.Write(seq)
	}

	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
