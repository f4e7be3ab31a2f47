package terminal

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin and stdout are attached to a usable terminal
func IsInteractive() bool {
	return probe(os.Getenv, term.IsTerminal, int(os.Stdin.Fd()), int(os.Stdout.Fd()))
}

// probe is IsInteractive with its environment injected
func probe(getenv func(string) string, isTTY func(int) bool, fds ...int) bool {
	switch getenv("TERM") {
	case "", "dumb":
		return false
	}
	for _, fd := range fds {
		if !isTTY(fd) {
			return false
		}
	}
	return true
}
