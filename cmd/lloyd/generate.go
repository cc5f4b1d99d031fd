package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/pointio"
	"github.com/hupe1980/lloyd/testutil"
)

type generateOptions struct {
	store StoreConfig
	blobs testutil.BlobConfig
	seed  int64
}

func newGenerateCmd() *cobra.Command {
	opts := generateOptions{
		store: StoreConfig{Kind: storeLocal},
		blobs: testutil.DefaultBlobConfig(),
	}

	cmd := &cobra.Command{
		Use:   "generate output",
		Short: "Write Gaussian blobs as a CSV input file",
		Long: `Draw --clusters centers around --means with --center-devs and
--per-cluster points around each center with --point-devs. The output
carries a c0,c1,... header and is compressed by extension.

Examples:
  lloyd generate points.csv
  lloyd generate --clusters 8 --per-cluster 100000 points.csv.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = time.Now().UnixNano()
			}
			return generate(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&opts.blobs.Clusters, "clusters", opts.blobs.Clusters, "Number of blobs")
	fs.IntVar(&opts.blobs.PerCluster, "per-cluster", opts.blobs.PerCluster, "Points per blob")
	fs.Float64SliceVar(&opts.blobs.CenterMeans, "means", opts.blobs.CenterMeans, "Mean of the blob centers per dimension")
	fs.Float64SliceVar(&opts.blobs.CenterDevs, "center-devs", opts.blobs.CenterDevs, "Deviation of the blob centers per dimension")
	fs.Float64SliceVar(&opts.blobs.PointDevs, "point-devs", opts.blobs.PointDevs, "Deviation of the points around their center per dimension")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed")
	bindStoreFlags(fs, &opts.store)

	return cmd
}

func generate(ctx context.Context, opts generateOptions, name string, stdout io.Writer) (err error) {
	if err := opts.blobs.Validate(); err != nil {
		return err
	}

	store, err := openStore(ctx, opts.store)
	if err != nil {
		return err
	}

	points, _ := testutil.Blobs(testutil.NewRNG(opts.seed), opts.blobs)

	blob, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = blob.Abort()
		}
	}()

	if err := writePoints(blob, name, points); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := blob.Close(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}

	fmt.Fprintf(stdout, "wrote %d points of dimension %d to %s\n", len(points), opts.blobs.Dim(), name)
	return nil
}

func writePoints(blob blobstore.WritableBlob, name string, points [][]float64) error {
	enc, err := pointio.NewCompressor(blob, pointio.CompressionFor(name))
	if err != nil {
		return err
	}
	if err := testutil.WriteCSV(enc, points); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
