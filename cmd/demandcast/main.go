// main is the entry point for the demandcast CLI.
package main

import (
	"os"

	"github.com/demandlab/demandcast/cmd"
	"github.com/demandlab/demandcast/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogWarn("command failed", err)
		os.Exit(1)
	}
}
