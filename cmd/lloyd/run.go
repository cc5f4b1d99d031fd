package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/pointio"
	"github.com/hupe1980/lloyd/resource"
)

func newRunCmd() *cobra.Command {
	var flags *configFlags

	cmd := &cobra.Command{
		Use:   "run [threads centroids generations input [output]]",
		Short: "Cluster the points of one input file",
		Long: `Read points from --input, seed --centroids centroids, run --generations
generations and print the final objective. With --output every point is
written back followed by the index of its cluster.

Examples:
  lloyd run -t 8 -k 5 -g 20 -i points.csv -o clusters.csv
  lloyd run 8 5 20 points.csv clusters.csv
  lloyd run --config run.yaml --store s3 --bucket data -i points.csv.zst`,
		Args: cobra.MaximumNArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return runConfig(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = bindConfigFlags(cmd)
	return cmd
}

// runEnv holds what every clustering run needs besides the points.
type runEnv struct {
	store  blobstore.BlobStore
	rc     *resource.Controller
	logger *lloyd.Logger
}

func newRunEnv(ctx context.Context, cfg Config, stderr io.Writer) (*runEnv, error) {
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	level, err := cfg.level()
	if err != nil {
		return nil, err
	}

	hopts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(stderr, hopts)
	if cfg.JSON {
		handler = slog.NewJSONHandler(stderr, hopts)
	}

	return &runEnv{
		store: store,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   cfg.Resource.MemoryLimitBytes,
			IOLimitBytesPerSec: cfg.Resource.IOLimitBytesPerSec,
		}),
		logger: lloyd.NewLogger(handler),
	}, nil
}

func (e *runEnv) blobOptions(o *pointio.BlobOptions) {
	o.Resource = e.rc
}

func clustererOptions(cfg Config, env *runEnv) ([]lloyd.Option, error) {
	strategy, err := lloyd.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	policy, err := cfg.emptyPolicy()
	if err != nil {
		return nil, err
	}

	opts := []lloyd.Option{
		lloyd.WithWorkers(cfg.Threads),
		lloyd.WithStrategy(strategy),
		lloyd.WithEmptyClusterPolicy(policy),
		lloyd.WithLogger(env.logger),
		lloyd.WithResourceController(env.rc),
	}
	if cfg.Seed != nil {
		opts = append(opts, lloyd.WithSeed(*cfg.Seed))
	}
	return opts, nil
}

func runConfig(ctx context.Context, cfg Config, stdout, stderr io.Writer) error {
	env, err := newRunEnv(ctx, cfg, stderr)
	if err != nil {
		return err
	}

	if cfg.Precision == "float64" {
		return cluster[float64](ctx, cfg, env, stdout)
	}
	return cluster[float32](ctx, cfg, env, stdout)
}

// runResult is the JSON form of a finished run.
type runResult[T lloyd.Float] struct {
	Objective   T             `json:"objective"`
	Generations int           `json:"generations"`
	ElapsedMS   float64       `json:"elapsed_ms"`
	Centroids   [][]T         `json:"centroids"`
	Summary     lloyd.Summary `json:"summary"`
}

func cluster[T lloyd.Float](ctx context.Context, cfg Config, env *runEnv, stdout io.Writer) error {
	opts, err := clustererOptions(cfg, env)
	if err != nil {
		return err
	}

	var cd codec.Codec
	if cfg.Model != "" {
		if cd, err = cfg.modelCodec(); err != nil {
			return err
		}
	}

	start := time.Now()

	src, err := pointio.OpenBlob[T](ctx, env.store, cfg.Input, env.blobOptions)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	c, err := lloyd.New[T](ctx, src, cfg.Centroids, opts...)
	_ = src.Close()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	objective, err := c.Run(ctx, cfg.Generations)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if cfg.Output != "" {
		if err := export(ctx, c, env, cfg.Output); err != nil {
			return err
		}
	}

	if cfg.Model != "" {
		if err := lloyd.SaveModel(ctx, env.store, cfg.Model, c.Snapshot(), cd); err != nil {
			return err
		}
	}

	if cfg.JSON {
		enc := gojson.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runResult[T]{
			Objective:   objective,
			Generations: c.Generation(),
			ElapsedMS:   float64(elapsed.Microseconds()) / 1000,
			Centroids:   c.Centroids(),
			Summary:     c.Summary(),
		})
	}

	fmt.Fprintf(stdout, "result = %f\n", float64(objective))
	for i, centroid := range c.Centroids() {
		fmt.Fprintf(stdout, "centroid %d: %v\n", i, centroid)
	}
	return nil
}

func export[T lloyd.Float](ctx context.Context, c *lloyd.Clusterer[T], env *runEnv, name string) error {
	w, err := pointio.CreateBlob[T](ctx, env.store, name, env.blobOptions)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := c.Export(ctx, w); err != nil {
		_ = w.Abort()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("commit output: %w", err)
	}
	return nil
}
