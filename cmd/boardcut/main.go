// BoardCut packs rectangular pieces onto stock boards of matching
// thickness and produces a printable cutting plan.
//
// Build:
//
//	go build -o boardcut ./cmd/boardcut
package main

import (
	"os"

	"github.com/piwi3910/BoardCut/cmd/boardcut/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
