// File: cmd/loopctl/commands/version.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// `loopctl version`.

package commands

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("loopctl %s (commit: %s)\n", Version, Commit)
	},
}
