package main

import (
	"os"

	"github.com/dwc-revival/nasd/cmd"
)

func main() {
	if err := cmd.CmdNasd.Execute(); err != nil {
		os.Exit(1)
	}
}
