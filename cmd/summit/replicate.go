package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/summit/internal/period"
)

func newReplicateCmd() *cobra.Command {
	var (
		configPath string
		nodeID     string
		groupID    string
	)

	cmd := &cobra.Command{
		Use:   "replicate",
		Short: "Replicate periods across nodes",
		Long: `Copies period definitions to every other node, skipping targets that
already have a period with the same alias. Safe to re-run: already-created
pairs are skipped.

Use --period to replicate one period, or --node to replicate every period
of a node.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplicate(cmd, configPath, nodeID, groupID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "summit.yaml", "path to Summit config file")
	cmd.Flags().StringVar(&nodeID, "node", "", "replicate all periods of this node")
	cmd.Flags().StringVar(&groupID, "period", "", "replicate this period only")
	return cmd
}

func runReplicate(cmd *cobra.Command, configPath, nodeID, groupID string) error {
	if (nodeID == "") == (groupID == "") {
		return fmt.Errorf("exactly one of --node and --period is required")
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var result *period.ReplicationResult
	if groupID != "" {
		result, err = period.ReplicateOne(gormDB, groupID)
	} else {
		result, err = period.ReplicateAll(gormDB, nodeID)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %d period(s)\n", result.Count)
	for _, p := range result.CreatedGroups {
		fmt.Fprintf(out, "  %s %q on node %s\n", p.ID, p.Alias, p.NodeID)
	}
	return nil
}
