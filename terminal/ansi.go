package terminal

// Restore sequences written by EmergencyReset
var (
	csiRIS        = []byte("\x1bc") // Reset to Initial State
	csiSGR0       = []byte("\x1b[0m")
	csiCursorShow = []byte("\x1b[?25h")

	csiAltScreenExit = []byte("\x1b[?1049l")
	csiAutoWrapOn    = []byte("\x1b[?7h")

	// Mouse reporting modes, disabled most specific first
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseSGROff    = []byte("\x1b[?1006l")

	csiBracketedPasteOff = []byte("\x1b[?2004l")
)
