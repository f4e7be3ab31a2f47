// Command termcore-demo exercises the runtime against a real terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/lixenwraith/termcore/terminal"
)

var version = "dev"

func main() {
	// Panic recovery: restore the terminal even if the session crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.ReportCrash(os.Stderr, r)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		stop()
		os.Exit(1)
	}
}
