// File: cmd/loopctl/commands/probe.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// `loopctl probe`: report platform and native transport support.

package commands

import (
	"github.com/spf13/cobra"

	"github.com/momentics/hioload-loops/internal/transport"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Report native transport availability",
	Long: `Report whether the native transport can be used on this host.

Set HIOLOAD_NO_NATIVE=1 to force the portable transport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		native := transport.HasNativeSupport()
		cmd.Printf("platform:  %s\n", transport.Platform())
		cmd.Printf("native:    %t\n", native)
		cmd.Printf("transport: %s\n", transport.RuntimeTransportName(native))
		return nil
	},
}
