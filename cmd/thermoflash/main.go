// Command thermoflash is a small CLI front end over the flash engine:
// it flashes a fluid to a requested specification, reports its
// saturation curve, or renders a PV diagram, adapted from the teacher's
// examples/main.go one-shot driver into a reusable cobra command tree.
package main

import (
	"os"

	"github.com/gothermo/thermocore/cmd/thermoflash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
