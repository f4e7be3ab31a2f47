package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/termcore/app"
	"github.com/lixenwraith/termcore/event"
	"github.com/lixenwraith/termcore/state"
	"github.com/lixenwraith/termcore/terminal"
)

func newCountersCmd(gf *globalFlags) *cobra.Command {
	var (
		n      int
		target uint64
	)
	cmd := &cobra.Command{
		Use:   "counters",
		Short: "Race background workers incrementing shared counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 || n > 32 {
				return fmt.Errorf("--workers must be between 1 and 32 (got %d)", n)
			}
			return runCounters(cmd.Context(), gf, cmd, n, target)
		},
	}
	cmd.Flags().IntVarP(&n, "workers", "n", 4, "number of counters, one worker each")
	cmd.Flags().Uint64Var(&target, "target", 1000, "quit once every counter reaches this value")
	return cmd
}

func runCounters(ctx context.Context, gf *globalFlags, cmd *cobra.Command, n int, target uint64) error {
	s, err := gf.session(cmd)
	if err != nil {
		return err
	}

	st := state.NewCounterState(n)
	opts := append(s.opts, app.WithEventHandler(func(ev event.Event) {
		// Space bumps every counter in one atomic step
		if ev.Kind == event.KindKey && ev.Key.Matches(event.Rune(' ')) {
			st.IncrementAll()
		}
	}))

	a, err := app.New[state.CounterSnapshot](st, s.cfg.TickRate, opts...)
	if err != nil {
		s.closer.Close()
		return err
	}
	defer s.finish(a)

	for i := range n {
		delay := time.Duration(1+rand.IntN(9)) * time.Millisecond
		if _, err := a.Spawn(func(ctx context.Context) error {
			return countWorker(ctx, st, i, delay)
		}); err != nil {
			return err
		}
	}

	return a.Run(ctx, func(f *terminal.Frame, snap state.CounterSnapshot) error {
		area := f.Area()
		f.DrawText(1, 0, fmt.Sprintf("counters v%d  (space: bump all, %s: quit)", snap.Version(), s.cfg.QuitKey), styleTitle)

		done := true
		barWidth := max(area.W-16, 1)
		for i, v := range snap.Values() {
			ratio := min(float64(v)/float64(target), 1)
			f.DrawText(1, 2+i, fmt.Sprintf("#%-2d %8d", i, v), terminal.StyleDefault)
			drawBar(f, 14, 2+i, int(ratio*float64(barWidth)), ratio)
			done = done && v >= target
		}
		drawMetrics(f, s.metrics, 3+n)

		if done {
			st.Quit()
		}
		return nil
	})
}

// countWorker increments counter i every delay until cancelled
func countWorker(ctx context.Context, st *state.CounterState, i int, delay time.Duration) error {
	ticker := time.NewTicker(delay)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !st.IsRunning() {
				return nil
			}
			st.Increment(i)
		}
	}
}
