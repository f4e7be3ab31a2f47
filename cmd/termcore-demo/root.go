package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/termcore/app"
	"github.com/lixenwraith/termcore/config"
	"github.com/lixenwraith/termcore/logging"
	"github.com/lixenwraith/termcore/status"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	tickRate   time.Duration
	drain      string
	logEnabled bool
	mouse      bool
}

func newRootCmd() *cobra.Command {
	var gf globalFlags

	root := &cobra.Command{
		Use:           "termcore-demo",
		Short:         "Drive the termcore runtime in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&gf.configPath, "config", "c", "", "YAML config file")
	pf.DurationVar(&gf.tickRate, "tick", 0, "input poll timeout (overrides config)")
	pf.StringVar(&gf.drain, "drain", "", "events handled per frame: one or all (overrides config)")
	pf.BoolVar(&gf.logEnabled, "log", false, "write logs to the log directory")
	pf.BoolVar(&gf.mouse, "mouse", false, "enable mouse reporting")

	root.AddCommand(
		newCountersCmd(&gf),
		newFlagsCmd(&gf),
		newConfigCmd(&gf),
	)
	return root
}

// resolve merges config file, environment and flags in that order
func (gf *globalFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if gf.configPath != "" {
		loaded, err := config.Load(gf.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.Environ()); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("tick") {
		cfg.TickRate = gf.tickRate
	}
	if flags.Changed("drain") {
		cfg.Drain = gf.drain
	}
	if flags.Changed("log") {
		cfg.Log.Enabled = gf.logEnabled
	}
	if flags.Changed("mouse") {
		cfg.Mouse = gf.mouse
	}
	return cfg, cfg.Validate()
}

// session is the shared setup of the interactive subcommands
type session struct {
	cfg     config.Config
	log     *slog.Logger
	closer  io.Closer
	metrics *status.Registry
	opts    []app.Option
}

func (gf *globalFlags) session(cmd *cobra.Command) (*session, error) {
	cfg, err := gf.resolve(cmd)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.AppOptions()
	if err != nil {
		closer.Close()
		return nil, err
	}

	metrics := status.NewRegistry()
	opts = append(opts, app.WithLogger(logger), app.WithMetrics(metrics))
	return &session{cfg: cfg, log: logger, closer: closer, metrics: metrics, opts: opts}, nil
}

// finish logs the shutdown report and releases the log file
func (s *session) finish(a interface{ Shutdown() app.ShutdownReport }) {
	rep := a.Shutdown()
	for _, err := range rep.Errors {
		s.log.Warn("task error", "error", err)
	}
	s.closer.Close()
}

func newConfigCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gf.resolve(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
