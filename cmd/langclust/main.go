// Command langclust clusters a posting dump by language and answer
// popularity and prints the cluster table.
//
// Dumps and reports can live on the local filesystem, on Amazon S3
// (s3://bucket/key, credentials from the default AWS chain), or on a
// MinIO deployment (minio://host:port/bucket/key, credentials from
// MINIO_ACCESS_KEY / MINIO_SECRET_KEY).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/langclust"
	"github.com/hupe1980/langclust/dumpstore"
	miniostore "github.com/hupe1980/langclust/dumpstore/minio"
	s3store "github.com/hupe1980/langclust/dumpstore/s3"
	"github.com/hupe1980/langclust/resource"
	"github.com/hupe1980/langclust/summary"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func main() {
	var (
		input       = flag.String("input", "", "posting dump (path, s3:// or minio:// URL); .gz, .zst and .lz4 are decompressed")
		output      = flag.String("output", "", "report destination (path, s3:// or minio:// URL); empty writes to stdout")
		languages   = flag.String("languages", "", "comma-separated language list; empty uses the default registry")
		spread      = flag.Int64("spread", langclust.DefaultSpread, "coordinate spacing between language lanes")
		clusters    = flag.Int("clusters-per-language", langclust.DefaultClustersPerLanguage, "seed centers per language")
		maxIter     = flag.Int("max-iterations", langclust.DefaultMaxIterations, "refinement iteration budget")
		threshold   = flag.Int64("threshold", langclust.DefaultConvergenceThreshold, "convergence threshold (total squared center movement)")
		seed        = flag.Int64("seed", langclust.DefaultSeed, "base sampling seed")
		partitions  = flag.Int("partitions", 0, "dataset partitions; 0 uses GOMAXPROCS")
		workers     = flag.Int("workers", 0, "max concurrent workers; 0 is unbounded")
		ioLimit     = flag.Int64("io-limit", 0, "I/O throughput limit in bytes/sec; 0 is unbounded")
		logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
		jsonLog     = flag.Bool("json-log", false, "emit JSON logs instead of text")
		showMetrics = flag.Bool("metrics", false, "print run metrics to stderr")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "langclust: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), *input, *output, runConfig{
		languages:   *languages,
		spread:      *spread,
		clusters:    *clusters,
		maxIter:     *maxIter,
		threshold:   *threshold,
		seed:        *seed,
		partitions:  *partitions,
		workers:     *workers,
		ioLimit:     *ioLimit,
		logLevel:    *logLevel,
		jsonLog:     *jsonLog,
		showMetrics: *showMetrics,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "langclust: %v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	languages   string
	spread      int64
	clusters    int
	maxIter     int
	threshold   int64
	seed        int64
	partitions  int
	workers     int
	ioLimit     int64
	logLevel    string
	jsonLog     bool
	showMetrics bool
}

func run(ctx context.Context, input, output string, cfg runConfig) error {
	level, err := parseLevel(cfg.logLevel)
	if err != nil {
		return err
	}

	logger := langclust.NewTextLogger(level)
	if cfg.jsonLog {
		logger = langclust.NewJSONLogger(level)
	}

	var ctrl *resource.Controller
	if cfg.workers > 0 || cfg.ioLimit > 0 {
		ctrl = resource.NewController(resource.Config{
			MaxWorkers:         int64(cfg.workers),
			IOLimitBytesPerSec: cfg.ioLimit,
		})
	}

	optFns := []langclust.Option{
		langclust.WithSpread(cfg.spread),
		langclust.WithClustersPerLanguage(cfg.clusters),
		langclust.WithMaxIterations(cfg.maxIter),
		langclust.WithConvergenceThreshold(cfg.threshold),
		langclust.WithSeed(cfg.seed),
		langclust.WithResourceController(ctrl),
		langclust.WithLogger(logger),
	}
	if cfg.languages != "" {
		optFns = append(optFns, langclust.WithLanguages(strings.Split(cfg.languages, ",")...))
	}
	if cfg.partitions > 0 {
		optFns = append(optFns, langclust.WithPartitions(cfg.partitions))
	}

	metrics := &langclust.BasicMetricsCollector{}
	if cfg.showMetrics {
		optFns = append(optFns, langclust.WithMetricsCollector(metrics))
	}

	pipeline, err := langclust.New(optFns...)
	if err != nil {
		return err
	}

	store, name, err := openStore(ctx, input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}

	lines, err := dumpstore.ReadLines(ctx, store, name, ctrl)
	if err != nil {
		return fmt.Errorf("read dump: %w", err)
	}

	result, err := pipeline.Run(ctx, lines)
	if err != nil {
		return err
	}

	if err := writeReport(ctx, output, result.Stats); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.showMetrics {
		stats := metrics.GetStats()
		fmt.Fprintf(os.Stderr, "lines=%d iterations=%d last_shift=%d avg_iteration=%dns\n",
			stats.ParseLines, stats.IterationCount, stats.LastShift, stats.IterationAvgNanos)
	}

	return nil
}

func writeReport(ctx context.Context, output string, stats []summary.ClusterStat) error {
	if output == "" {
		return summary.WriteTable(os.Stdout, stats)
	}

	store, name, err := openStore(ctx, output)
	if err != nil {
		return err
	}

	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}

	if err := summary.WriteTable(w, stats); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// openStore resolves a path or URL to a dump store and an object name
// within it.
func openStore(ctx context.Context, raw string) (dumpstore.Store, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, "", err
	}

	switch u.Scheme {
	case "s3":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", err
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, "", fmt.Errorf("invalid S3 URL %q: want s3://bucket/key", raw)
		}
		return s3store.NewStore(awss3.NewFromConfig(cfg), u.Host, ""), key, nil

	case "minio":
		bucket, key, ok := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if !ok || u.Host == "" {
			return nil, "", fmt.Errorf("invalid MinIO URL %q: want minio://host:port/bucket/key", raw)
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds: credentials.NewStaticV4(
				os.Getenv("MINIO_ACCESS_KEY"),
				os.Getenv("MINIO_SECRET_KEY"),
				"",
			),
			Secure: os.Getenv("MINIO_SECURE") == "true",
		})
		if err != nil {
			return nil, "", err
		}
		return miniostore.NewStore(client, bucket, ""), key, nil

	default:
		dir, file := filepath.Split(raw)
		if dir == "" {
			dir = "."
		}
		return dumpstore.NewLocalStore(dir), file, nil
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
