package main

import (
	"context"
	"fmt"
	"io"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/pointio"
)

func newBenchCmd() *cobra.Command {
	var (
		flags      *configFlags
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "bench [threads centroids generations input]",
		Short: "Time every update strategy on one input file",
		Long: `Load, seed and iterate the input --iterations times with each update
strategy and print the average wall time per iteration in milliseconds.`,
		Args: cobra.MaximumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations < 1 {
				return fmt.Errorf("iterations must be at least 1, got %d", iterations)
			}
			cfg, err := flags.resolve(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return benchConfig(cmd.Context(), cfg, iterations, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = bindConfigFlags(cmd)
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10, "Runs per strategy")
	return cmd
}

// benchResult is the timing of one strategy.
type benchResult struct {
	Strategy   string  `json:"strategy"`
	Workers    int     `json:"workers"`
	Iterations int     `json:"iterations"`
	AverageMS  float64 `json:"avg_ms"`
}

var benchStrategies = []lloyd.Strategy{
	lloyd.StrategySequential,
	lloyd.StrategyDataParallel,
	lloyd.StrategyWorkerPool,
}

func benchConfig(ctx context.Context, cfg Config, iterations int, stdout, stderr io.Writer) error {
	env, err := newRunEnv(ctx, cfg, stderr)
	if err != nil {
		return err
	}

	results := make([]benchResult, 0, len(benchStrategies))
	for _, s := range benchStrategies {
		run := cfg
		run.Strategy = s.String()
		if s == lloyd.StrategySequential {
			run.Threads = 1
		}

		var avg time.Duration
		if cfg.Precision == "float64" {
			avg, err = benchmark[float64](ctx, run, env, iterations)
		} else {
			avg, err = benchmark[float32](ctx, run, env, iterations)
		}
		if err != nil {
			return fmt.Errorf("bench %s: %w", s, err)
		}

		r := benchResult{
			Strategy:   s.String(),
			Workers:    run.Threads,
			Iterations: iterations,
			AverageMS:  float64(avg.Microseconds()) / 1000,
		}
		results = append(results, r)

		if !cfg.JSON {
			fmt.Fprintf(stdout, "%s (%d workers)\navg = %f ms out of %d iterations\n\n", r.Strategy, r.Workers, r.AverageMS, r.Iterations)
		}
	}

	if cfg.JSON {
		enc := gojson.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return nil
}

// benchmark times load, seeding and all generations together, as a caller
// clustering a fresh file would see them.
func benchmark[T lloyd.Float](ctx context.Context, cfg Config, env *runEnv, iterations int) (time.Duration, error) {
	opts, err := clustererOptions(cfg, env)
	if err != nil {
		return 0, err
	}

	var total time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()

		src, err := pointio.OpenBlob[T](ctx, env.store, cfg.Input, env.blobOptions)
		if err != nil {
			return 0, err
		}
		c, err := lloyd.New[T](ctx, src, cfg.Centroids, opts...)
		_ = src.Close()
		if err != nil {
			return 0, err
		}
		_, err = c.Run(ctx, cfg.Generations)
		_ = c.Close()
		if err != nil {
			return 0, err
		}

		total += time.Since(start)
	}
	return total / time.Duration(iterations), nil
}
