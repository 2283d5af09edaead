// Command skdemo runs the SimpleKit demo application in a terminal, serves
// it over SSH and replays recorded sessions.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
