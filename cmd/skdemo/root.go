package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stlalpha/simplekit/internal/config"
	"github.com/stlalpha/simplekit/internal/confwatch"
	"github.com/stlalpha/simplekit/internal/logging"
	"github.com/stlalpha/simplekit/internal/metrics"
)

// cli holds what the persistent pre-run resolved for the subcommands
type cli struct {
	cfgFile string
	logFile string
	loader  *config.Loader
	cfg     config.Config
	logOut  io.Closer
}

func newRootCmd() *cobra.Command {
	return (&cli{}).command()
}

func (c *cli) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "skdemo",
		Short: "SimpleKit demo host",
		Long: `skdemo hosts the SimpleKit demo: a box you can drag, click, double
click and long press. Run it in this terminal, serve it to SSH clients or
replay a recorded session.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logOut != nil {
				_ = c.logOut.Close()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default is ./simplekit.yaml or $HOME/simplekit.yaml)")
	pf.StringVar(&c.logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.Bool("debug", false, "enable debug logging")
	pf.Int("frame-rate", 0, "frames per second")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(
		newRunCmd(c),
		newServeCmd(c),
		newReplayCmd(c),
		newVersionCmd(),
	)
	return root
}

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"debug":        "debug",
	"frame-rate":   "frame_rate",
	"metrics-addr": "metrics.addr",
	"ssh-host":     "ssh.host",
	"ssh-port":     "ssh.port",
	"host-key":     "ssh.host_key",
	"record":       "record.path",
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	c.loader = config.NewLoader(c.cfgFile)
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed || bindErr != nil {
			return
		}
		bindErr = c.loader.BindFlag(key, f)
	})
	if bindErr != nil {
		return bindErr
	}

	var out io.Writer = cmd.ErrOrStderr()
	if c.logFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.logFile), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(c.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", c.logFile, err)
		}
		c.logOut = f
		out = f
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logging.Setup(debug, out)

	cfg, err := c.loader.Load()
	if err != nil {
		return err
	}
	if cfg.Debug && !debug {
		logging.Setup(true, out)
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Enabled = true
	}
	c.cfg = cfg
	logging.Debug("Configuration: %+v", cfg)
	return nil
}

// startMetrics starts the metrics endpoint and the stats reporter when
// enabled. The returned stop func is always safe to call.
func (c *cli) startMetrics(reg *metrics.Registry, counter *metrics.EventCounter) (func(), error) {
	m := c.cfg.Metrics
	if !m.Enabled {
		return func() {}, nil
	}

	srv, err := metrics.NewServer(m.Addr, reg, counter)
	if err != nil {
		return nil, err
	}
	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("failed to start metrics server: %w", err)
	}

	var reporter *metrics.Reporter
	if m.ReportSchedule != "" {
		reporter, err = metrics.NewReporter(m.ReportSchedule, reg, logging.For("report"))
		if err != nil {
			srv.Close(context.Background())
			return nil, err
		}
		reporter.Start()
	}

	return func() {
		if reporter != nil {
			reporter.Stop()
			reporter.Report()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Close(ctx)
	}, nil
}

// watchConfig calls onReload whenever the loaded config file changes. The
// file is reread through the same loader, so explicit flags still win. It is
// a no-op when running on defaults.
func (c *cli) watchConfig(onReload confwatch.ReloadFunc) func() {
	path := c.loader.Path()
	if path == "" {
		return func() {}
	}
	w, err := confwatch.New(path, confwatch.DefaultDebounce, c.loader.Load, onReload)
	if err != nil {
		logging.For("confwatch").WithError(err).Warn("Config hot reload disabled")
		return func() {}
	}
	return w.Stop
}
