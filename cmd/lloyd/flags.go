package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configFlags binds every Config field to a flag. After parsing, apply
// overwrites only the fields whose flag was set explicitly.
type configFlags struct {
	path string
	cfg  Config
	seed int64
}

func bindConfigFlags(cmd *cobra.Command) *configFlags {
	f := &configFlags{cfg: DefaultConfig()}
	fs := cmd.Flags()

	fs.StringVar(&f.path, "config", "", "YAML configuration file")
	fs.IntVarP(&f.cfg.Threads, "threads", "t", f.cfg.Threads, "Number of workers")
	fs.IntVarP(&f.cfg.Centroids, "centroids", "k", f.cfg.Centroids, "Number of clusters")
	fs.IntVarP(&f.cfg.Generations, "generations", "g", f.cfg.Generations, "Number of generations")
	fs.StringVarP(&f.cfg.Input, "input", "i", "", "Input CSV blob (.zst and .lz4 are decompressed)")
	fs.StringVarP(&f.cfg.Output, "output", "o", "", "Output CSV blob with one cluster index per point")
	fs.StringVar(&f.cfg.Model, "model", "", "Write the final centroids as a model blob")
	fs.StringVar(&f.cfg.Codec, "codec", f.cfg.Codec, "Model codec (json, go-json)")
	fs.StringVarP(&f.cfg.Strategy, "strategy", "s", f.cfg.Strategy, "Update strategy (sequential, pool, parallel)")
	fs.Int64Var(&f.seed, "seed", 0, "Random seed for reproducible seeding")
	fs.StringVar(&f.cfg.Precision, "precision", f.cfg.Precision, "Coordinate type (float32, float64)")
	fs.StringVar(&f.cfg.EmptyPolicy, "empty-policy", f.cfg.EmptyPolicy, "Empty cluster handling (retain, reseed)")
	fs.StringVar(&f.cfg.LogLevel, "log-level", f.cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&f.cfg.JSON, "json", false, "Print results and logs as JSON")

	bindStoreFlags(fs, &f.cfg.Store)

	fs.Int64Var(&f.cfg.Resource.MemoryLimitBytes, "memory-limit", 0, "Maximum bytes held by the point store (0 = unlimited)")
	fs.Int64Var(&f.cfg.Resource.IOLimitBytesPerSec, "io-limit", 0, "Maximum blob IO in bytes per second (0 = unlimited)")

	return f
}

// bindStoreFlags binds the blob store selection to fs.
func bindStoreFlags(fs *pflag.FlagSet, sc *StoreConfig) {
	fs.StringVar(&sc.Kind, "store", sc.Kind, "Blob store (local, s3, minio)")
	fs.StringVar(&sc.Root, "root", "", "Root directory of the local store")
	fs.StringVar(&sc.Bucket, "bucket", "", "Bucket for s3 and minio")
	fs.StringVar(&sc.Prefix, "prefix", "", "Key prefix for s3 and minio")
	fs.StringVar(&sc.Endpoint, "endpoint", "", "Endpoint for minio or a custom s3 endpoint")
	fs.StringVar(&sc.Region, "region", "", "Bucket region")
	fs.StringVar(&sc.AccessKey, "access-key", "", "Access key")
	fs.StringVar(&sc.SecretKey, "secret-key", "", "Secret key")
	fs.BoolVar(&sc.Insecure, "insecure", false, "Use plain HTTP for minio")
}

// resolve loads the config file and lays the explicitly set flags over it.
// Up to five positional arguments fill threads, centroids, generations,
// input and output in that order.
func (f *configFlags) resolve(fs *pflag.FlagSet, args []string) (Config, error) {
	cfg, err := LoadConfig(f.path)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "threads":
			cfg.Threads = f.cfg.Threads
		case "centroids":
			cfg.Centroids = f.cfg.Centroids
		case "generations":
			cfg.Generations = f.cfg.Generations
		case "input":
			cfg.Input = f.cfg.Input
		case "output":
			cfg.Output = f.cfg.Output
		case "model":
			cfg.Model = f.cfg.Model
		case "codec":
			cfg.Codec = f.cfg.Codec
		case "strategy":
			cfg.Strategy = f.cfg.Strategy
		case "seed":
			seed := f.seed
			cfg.Seed = &seed
		case "precision":
			cfg.Precision = f.cfg.Precision
		case "empty-policy":
			cfg.EmptyPolicy = f.cfg.EmptyPolicy
		case "log-level":
			cfg.LogLevel = f.cfg.LogLevel
		case "json":
			cfg.JSON = f.cfg.JSON
		case "store":
			cfg.Store.Kind = f.cfg.Store.Kind
		case "root":
			cfg.Store.Root = f.cfg.Store.Root
		case "bucket":
			cfg.Store.Bucket = f.cfg.Store.Bucket
		case "prefix":
			cfg.Store.Prefix = f.cfg.Store.Prefix
		case "endpoint":
			cfg.Store.Endpoint = f.cfg.Store.Endpoint
		case "region":
			cfg.Store.Region = f.cfg.Store.Region
		case "access-key":
			cfg.Store.AccessKey = f.cfg.Store.AccessKey
		case "secret-key":
			cfg.Store.SecretKey = f.cfg.Store.SecretKey
		case "insecure":
			cfg.Store.Insecure = f.cfg.Store.Insecure
		case "memory-limit":
			cfg.Resource.MemoryLimitBytes = f.cfg.Resource.MemoryLimitBytes
		case "io-limit":
			cfg.Resource.IOLimitBytesPerSec = f.cfg.Resource.IOLimitBytesPerSec
		}
	})

	ints := []*int{&cfg.Threads, &cfg.Centroids, &cfg.Generations}
	for i, arg := range args {
		switch {
		case i < len(ints):
			n, err := strconv.Atoi(arg)
			if err != nil {
				return cfg, &positionalError{pos: i + 1, arg: arg, err: err}
			}
			*ints[i] = n
		case i == 3:
			cfg.Input = arg
		case i == 4:
			cfg.Output = arg
		}
	}

	return cfg, cfg.Validate()
}
