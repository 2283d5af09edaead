package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/stlalpha/simplekit/pkg/simplekit"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the toolkit version",
		Args:  cobra.NoArgs,
		// skip config loading
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "skdemo (SimpleKit %s, %s)\n", simplekit.Version, runtime.Version())
		},
	}
}
