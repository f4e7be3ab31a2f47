package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/termcore/app"
	"github.com/lixenwraith/termcore/event"
	"github.com/lixenwraith/termcore/state"
	"github.com/lixenwraith/termcore/terminal"
)

// shownFlags are the rows drawn by the flags view, toggled by digits 1..6
var shownFlags = []state.Flag{
	state.FlagRunning,
	state.FlagProcessing,
	state.FlagDebug,
	state.FlagError,
	state.FlagAwaitingInput,
	state.FlagRendering,
}

var (
	styleOn  = terminal.StyleDefault.Foreground(terminal.RGB{R: 80, G: 200, B: 120})
	styleOff = terminal.StyleDefault.With(terminal.AttrDim)
)

func newFlagsCmd(gf *globalFlags) *cobra.Command {
	var blink time.Duration
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Toggle bits of an atomic flag register from the keyboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlags(cmd.Context(), gf, cmd, blink)
		},
	}
	cmd.Flags().DurationVar(&blink, "blink", 500*time.Millisecond, "processing flag toggle period, 0 disables")
	return cmd
}

func runFlags(ctx context.Context, gf *globalFlags, cmd *cobra.Command, blink time.Duration) error {
	s, err := gf.session(cmd)
	if err != nil {
		return err
	}

	st := state.NewFlagState(state.Mask(state.FlagRunning, state.FlagAwaitingInput))
	var last string
	opts := append(s.opts, app.WithEventHandler(func(ev event.Event) {
		last = ev.String()
		if ev.Kind != event.KindKey {
			return
		}
		switch r := ev.Key.Rune; {
		case r >= '1' && int(r-'1') < len(shownFlags):
			st.Toggle(shownFlags[r-'1'])
		case r == 'd':
			st.Toggle(state.FlagDebug)
		case r == 'r':
			st.UpdateMultiple(
				state.FlagUpdate{Flag: state.FlagProcessing, Value: false},
				state.FlagUpdate{Flag: state.FlagError, Value: false},
				state.FlagUpdate{Flag: state.FlagRendering, Value: false},
			)
		}
	}))

	a, err := app.New[state.FlagsSnapshot](st, s.cfg.TickRate, opts...)
	if err != nil {
		s.closer.Close()
		return err
	}
	defer s.finish(a)

	if blink > 0 {
		if _, err := a.Spawn(func(ctx context.Context) error {
			ticker := time.NewTicker(blink)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if !st.IsRunning() {
						return nil
					}
					st.Toggle(state.FlagProcessing)
				}
			}
		}); err != nil {
			return err
		}
	}

	return a.Run(ctx, func(f *terminal.Frame, snap state.FlagsSnapshot) error {
		f.DrawText(1, 0, fmt.Sprintf("flags  (1-%d: toggle, d: debug, r: reset, %s: quit)", len(shownFlags), s.cfg.QuitKey), styleTitle)
		f.DrawText(1, 1, snap.String(), styleDim)

		for i, flag := range shownFlags {
			style, mark := styleOff, "off"
			if snap.Get(flag) {
				style, mark = styleOn, "on"
			}
			f.DrawText(1, 3+i, fmt.Sprintf("%d %-16s %s", i+1, flag, mark), style)
		}

		row := 4 + len(shownFlags)
		f.DrawText(1, row, "last: "+last, styleDim)
		if snap.Get(state.FlagDebug) {
			drawMetrics(f, s.metrics, row+2)
		}
		return nil
	})
}
