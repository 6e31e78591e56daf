// File: cmd/loopctl/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// loopctl entry point.

package main

import (
	"os"

	"github.com/momentics/hioload-loops/cmd/loopctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintErr("Error: %v", err)
		os.Exit(1)
	}
}
