package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
)

// Config is the full run configuration. It is read from an optional YAML
// file; command-line flags override it.
type Config struct {
	Threads     int    `yaml:"threads"`
	Centroids   int    `yaml:"centroids"`
	Generations int    `yaml:"generations"`
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Model       string `yaml:"model"`
	Codec       string `yaml:"codec"`
	Strategy    string `yaml:"strategy"`
	Seed        *int64 `yaml:"seed"`
	Precision   string `yaml:"precision"`
	EmptyPolicy string `yaml:"empty_policy"`
	LogLevel    string `yaml:"log_level"`
	JSON        bool   `yaml:"json"`

	Store    StoreConfig    `yaml:"store"`
	Resource ResourceConfig `yaml:"resource"`
}

// StoreConfig selects where input and output blobs live.
type StoreConfig struct {
	Kind      string `yaml:"kind"`
	Root      string `yaml:"root"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Insecure  bool   `yaml:"insecure"`
}

// ResourceConfig bounds memory and IO.
type ResourceConfig struct {
	MemoryLimitBytes   int64 `yaml:"memory_limit_bytes"`
	IOLimitBytesPerSec int64 `yaml:"io_limit_bytes_per_sec"`
}

const (
	storeLocal = "local"
	storeS3    = "s3"
	storeMinio = "minio"
)

// DefaultConfig returns the configuration used when neither a file nor a
// flag sets a value.
func DefaultConfig() Config {
	return Config{
		Threads:     1,
		Centroids:   5,
		Generations: 10,
		Codec:       codec.Default.Name(),
		Strategy:    lloyd.StrategyWorkerPool.String(),
		Precision:   "float32",
		EmptyPolicy: lloyd.RetainCentroid.String(),
		LogLevel:    "info",
		Store:       StoreConfig{Kind: storeLocal},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that can be checked before any IO.
func (c Config) Validate() error {
	var errs []error

	if c.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads: %w", lloyd.ErrInvalidWorkers))
	}
	if c.Centroids < 1 {
		errs = append(errs, fmt.Errorf("centroids: %w", lloyd.ErrInvalidK))
	}
	if c.Generations < 0 {
		errs = append(errs, fmt.Errorf("generations: %w", lloyd.ErrInvalidGenerations))
	}
	if c.Input == "" {
		errs = append(errs, errors.New("input: required"))
	}
	if _, err := lloyd.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.emptyPolicy(); err != nil {
		errs = append(errs, err)
	}
	if c.Precision != "float32" && c.Precision != "float64" {
		errs = append(errs, fmt.Errorf("precision: must be float32 or float64, got %q", c.Precision))
	}
	if _, err := c.modelCodec(); err != nil {
		errs = append(errs, fmt.Errorf("codec: %w", err))
	}
	if _, err := c.level(); err != nil {
		errs = append(errs, err)
	}

	switch c.Store.Kind {
	case storeLocal:
	case storeS3, storeMinio:
		if c.Store.Bucket == "" {
			errs = append(errs, fmt.Errorf("store: bucket is required for %s", c.Store.Kind))
		}
		if c.Store.Kind == storeMinio && c.Store.Endpoint == "" {
			errs = append(errs, errors.New("store: endpoint is required for minio"))
		}
	default:
		errs = append(errs, fmt.Errorf("store: unknown kind %q", c.Store.Kind))
	}

	return errors.Join(errs...)
}

func (c Config) emptyPolicy() (lloyd.EmptyClusterPolicy, error) {
	switch strings.ToLower(c.EmptyPolicy) {
	case "", lloyd.RetainCentroid.String():
		return lloyd.RetainCentroid, nil
	case lloyd.ReseedFarthest.String():
		return lloyd.ReseedFarthest, nil
	default:
		return 0, fmt.Errorf("empty_policy: unknown policy %q", c.EmptyPolicy)
	}
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// modelCodec resolves the codec that model blobs are written with.
func (c Config) modelCodec() (codec.Codec, error) {
	cd, ok := codec.ByName(c.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", lloyd.ErrUnknownCodec, c.Codec)
	}
	return cd, nil
}
