package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/stlalpha/simplekit/internal/demo"
	"github.com/stlalpha/simplekit/internal/logging"
	"github.com/stlalpha/simplekit/internal/metrics"
	"github.com/stlalpha/simplekit/internal/record"
	"github.com/stlalpha/simplekit/pkg/simplekit"
)

func newReplayCmd(c *cli) *cobra.Command {
	var show, quiet bool
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Replay a recorded session headlessly",
		Long: `Feeds a recording made with "run --record" through the demo with the
current translator settings and prints what the demo saw.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.replay(cmd, args[0], show, quiet)
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the final screen")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress bar")
	return cmd
}

func (c *cli) replay(cmd *cobra.Command, path string, show, quiet bool) error {
	log := logging.For("replay")
	rec, err := record.LoadFile(path)
	if err != nil {
		return err
	}

	tk := simplekit.New(c.cfg.Translators)
	tk.SetLogger(logging.For("toolkit"))
	counter := metrics.NewEventCounter()
	app := demo.New()
	app.Install(tk, counter.Wrap)

	var progress record.ProgressFunc
	if !quiet {
		bar := progressbar.NewOptions(len(rec.Frames),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Replaying..."),
			progressbar.OptionShowCount(),
		)
		progress = func(done, _ int) {
			if err := bar.Set(done); err != nil {
				log.WithError(err).Error("could not update progress bar")
			}
		}
		defer func() {
			if err := bar.Finish(); err != nil {
				log.WithError(err).Error("could not finish progress bar")
			}
			fmt.Fprintln(cmd.ErrOrStderr())
		}()
	}

	if err := rec.Replay(tk, progress); err != nil {
		return err
	}

	st := tk.Stats()
	clicks, dbl, long := app.Counts()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session %s: %d frames over %s\n", rec.Header.Session, len(rec.Frames), rec.Duration())
	fmt.Fprintf(out, "raw %d  coalesced %d  emitted %d\n", st.RawEvents, st.Coalesced(), st.Emitted)
	fmt.Fprintf(out, "clicks %d  double %d  long %d\n", clicks, dbl, long)

	if show {
		if mc, ok := tk.Surface().(*simplekit.MemoryCanvas); ok {
			fmt.Fprintln(out, mc.String())
		}
	}
	return nil
}
