// Command lloyd clusters points from a CSV file with Lloyd's algorithm.
//
//	lloyd run --threads 8 --centroids 5 --generations 20 --input points.csv --output out.csv
//	lloyd run 8 5 20 points.csv out.csv
//	lloyd bench --iterations 10 --input points.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
