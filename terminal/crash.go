package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// ReportCrash restores the terminal and writes the panic value and stack to w
// Uses \r\n so output stays readable if raw mode survived the reset
func ReportCrash(w io.Writer, r any) {
	if r == nil {
		return
	}
	EmergencyReset(os.Stdout)
	_ = os.Stdout.Sync()

	fmt.Fprintf(w, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(w, "Stack Trace:\r\n%s\r\n", debug.Stack())
	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}
}
