package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stlalpha/simplekit/internal/config"
	"github.com/stlalpha/simplekit/internal/demo"
	"github.com/stlalpha/simplekit/internal/logging"
	"github.com/stlalpha/simplekit/internal/metrics"
	"github.com/stlalpha/simplekit/internal/sshserve"
	"github.com/stlalpha/simplekit/pkg/simplekit"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo to SSH clients",
		Long: `Serves one demo session per SSH connection. Clients need a pty
(ssh -t). Any user name is accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd)
		},
	}
	cmd.Flags().String("ssh-host", "", "listen host")
	cmd.Flags().Int("ssh-port", 0, "listen port")
	cmd.Flags().String("host-key", "", "host key file, created if missing")
	return cmd
}

func (c *cli) serve(cmd *cobra.Command) error {
	log := logging.For("serve")
	reg := metrics.NewRegistry()
	counter := metrics.NewEventCounter()

	srv, err := sshserve.New(sshserve.Config{
		Addr:      c.cfg.SSH.Addr(),
		HostKey:   c.cfg.SSH.HostKey,
		FrameRate: c.cfg.FrameRate,
		Options:   c.cfg.Translators,
	}, func(tk *simplekit.Toolkit) {
		demo.New().Install(tk, counter.Wrap)
	}, reg)
	if err != nil {
		return err
	}

	stopMetrics, err := c.startMetrics(reg, counter)
	if err != nil {
		return err
	}
	defer stopMetrics()

	stopWatch := c.watchConfig(func(cfg config.Config) {
		srv.Reconfigure(cfg.Translators, cfg.FrameRate)
	})
	defer stopWatch()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		log.Infof("Shutting down, %d sessions active", srv.Sessions())
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		if err := srv.Shutdown(sctx); err != nil {
			_ = srv.Close()
		}
	}()
	return srv.ListenAndServe()
}
