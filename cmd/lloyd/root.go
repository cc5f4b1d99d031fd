package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lloyd",
		Short: "Cluster points with Lloyd's algorithm",
		Long: `lloyd partitions points read from a CSV file into k clusters.

Centroids are seeded with D²-weighted sampling, then moved for a fixed
number of generations. Input and output may live on the local file system,
in S3 or in any S3-compatible store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newGenerateCmd())
	return root
}
