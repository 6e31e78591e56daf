// File: cmd/loopctl/commands/groups.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// `loopctl groups`: build a selector and report its execution groups.

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/control"
	"github.com/momentics/hioload-loops/loops"
)

var (
	groupsNative      bool
	groupsAffinity    bool
	groupsWorkers     int
	groupsSelectCount int
	groupsOutput      string
	groupsTimeout     time.Duration
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Build a selector and list its execution groups",
	Long: `Build an event loop selector from the configuration, resolve the accept,
server and client groups, print their worker names and dispose of them.

Examples:
  # Portable groups with the configured sizes
  loopctl groups

  # Native groups if the host supports them, as JSON
  loopctl groups --native -o json`,
	RunE: runGroups,
}

func init() {
	groupsCmd.Flags().BoolVar(&groupsNative, "native", false, "prefer the native transport")
	groupsCmd.Flags().BoolVar(&groupsAffinity, "affinity", false, "pin native workers to CPUs")
	groupsCmd.Flags().IntVar(&groupsWorkers, "workers", 0, "override loops.workers")
	groupsCmd.Flags().IntVar(&groupsSelectCount, "select-count", 0, "override loops.select_count")
	groupsCmd.Flags().StringVarP(&groupsOutput, "output", "o", "text", "Output format (text|json)")
	groupsCmd.Flags().DurationVar(&groupsTimeout, "timeout", 5*time.Second, "dispose timeout")
}

type groupView struct {
	Role      string   `json:"role"`
	Name      string   `json:"name"`
	Native    bool     `json:"native"`
	Colocated bool     `json:"colocated"`
	Threads   []string `json:"threads"`
}

type groupsReport struct {
	Config map[string]any `json:"config"`
	Groups []groupView    `json:"groups"`
	Stats  map[string]any `json:"stats"`
}

func runGroups(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if groupsWorkers > 0 {
		cfg.Loops.Workers = groupsWorkers
	}
	if groupsAffinity {
		cfg.Loops.Affinity = true
	}
	if groupsSelectCount > 0 {
		cfg.Loops.SelectCount = groupsSelectCount
	}
	if err := control.Validate(cfg); err != nil {
		return err
	}

	// The selector is built from what the controller reports, not from cfg.
	ctrl := control.NewController()
	if err := ctrl.StoreConfig(cfg.Loops); err != nil {
		return fmt.Errorf("store config: %w", err)
	}
	var resolved control.LoopsConfig
	if err := ctrl.Decode(&resolved); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	sel, err := loops.New(loops.FromConfig(resolved)...)
	if err != nil {
		return fmt.Errorf("build selector: %w", err)
	}
	sel.RegisterProbes(ctrl)

	report, buildErr := describe(sel)
	report.Config = ctrl.GetConfig()
	sel.PublishStats(ctrl)
	report.Stats = ctrl.Stats()

	ctx, cancel := context.WithTimeout(cmd.Context(), groupsTimeout)
	defer cancel()
	if err := sel.Dispose(ctx); err != nil {
		return fmt.Errorf("dispose selector: %w", err)
	}
	if buildErr != nil {
		return buildErr
	}

	switch groupsOutput {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "text":
		printGroups(cmd, report)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", groupsOutput)
	}
}

func describe(sel *loops.Selector) (groupsReport, error) {
	var report groupsReport
	resolvers := []struct {
		role api.Role
		get  func(bool) (api.ExecutionGroup, error)
	}{
		{api.RoleServerSelect, sel.OnServerSelect},
		{api.RoleServer, sel.OnServer},
		{api.RoleClient, sel.OnClient},
	}
	for _, r := range resolvers {
		g, err := r.get(groupsNative)
		if err != nil {
			return report, fmt.Errorf("%s group: %w", r.role, err)
		}
		_, colocated := g.(api.ColocatedGroup)
		view := groupView{
			Role:      r.role.String(),
			Name:      g.Name(),
			Native:    g.Native(),
			Colocated: colocated,
		}
		for _, w := range g.Workers() {
			view.Threads = append(view.Threads, w.Name())
		}
		report.Groups = append(report.Groups, view)
	}
	return report, nil
}

func printGroups(cmd *cobra.Command, report groupsReport) {
	printSorted(cmd, "loops.", report.Config)
	for _, g := range report.Groups {
		cmd.Printf("%-7s %s (native=%t colocated=%t)\n", g.Role, g.Name, g.Native, g.Colocated)
		for _, t := range g.Threads {
			cmd.Printf("        %s\n", t)
		}
	}
	printSorted(cmd, "", report.Stats)
}

func printSorted(cmd *cobra.Command, prefix string, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("%s%s = %v\n", prefix, k, m[k])
	}
}
