package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stlalpha/simplekit/internal/config"
	"github.com/stlalpha/simplekit/internal/demo"
	"github.com/stlalpha/simplekit/internal/logging"
	"github.com/stlalpha/simplekit/internal/metrics"
	"github.com/stlalpha/simplekit/internal/record"
	"github.com/stlalpha/simplekit/internal/teahost"
	"github.com/stlalpha/simplekit/pkg/simplekit"
)

func newRunCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo in this terminal",
		Long: `Runs the demo full screen in the current terminal. Logs go to
skdemo.log unless --log-file is given. Press ctrl+c to quit.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.logFile == "" {
				c.logFile = "skdemo.log"
			}
			return c.setup(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd)
		},
	}
	cmd.Flags().String("record", "", "record the session to this file")
	return cmd
}

func (c *cli) run(cmd *cobra.Command) error {
	log := logging.For("run")
	tk := simplekit.New(c.cfg.Translators)
	tk.SetLogger(logging.For("toolkit"))

	host := teahost.New(
		teahost.WithTerminal(os.Stdout),
		teahost.WithFrameRate(c.cfg.FrameRate),
		teahost.WithConfigure(tk.Configure),
	)
	var ws simplekit.WindowingSystem = host

	if path := c.cfg.Record.Path; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create recording: %w", err)
		}
		defer f.Close()
		rec := record.NewRecorder(host, f, uuid.Nil)
		ws = rec
		log.Infof("Recording session %s to %s", rec.Session(), path)
		defer func() {
			if err := rec.Err(); err != nil {
				log.WithError(err).Error("Recording incomplete")
				return
			}
			log.Infof("Recorded %d frames", rec.Frames())
		}()
	}

	counter := metrics.NewEventCounter()
	demo.New().Install(tk, counter.Wrap)
	if err := tk.Startup(ws); err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	id := reg.Add("local", tk)
	defer reg.Remove(id)

	stopMetrics, err := c.startMetrics(reg, counter)
	if err != nil {
		return err
	}
	defer stopMetrics()

	stopWatch := c.watchConfig(func(cfg config.Config) {
		host.Reconfigure(cfg.Translators, cfg.FrameRate)
	})
	defer stopWatch()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return host.Run(ctx)
}
