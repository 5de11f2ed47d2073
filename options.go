package langclust

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/langclust/lang"
	"github.com/hupe1980/langclust/resource"
)

const (
	// DefaultSpread is the coordinate spacing between adjacent language lanes.
	DefaultSpread int64 = 1000

	// DefaultClustersPerLanguage is the number of seed centers drawn per language.
	DefaultClustersPerLanguage = 4

	// DefaultSeed is the base seed for deterministic sampling.
	DefaultSeed int64 = 1

	// DefaultMaxIterations caps the refinement loop.
	DefaultMaxIterations = 100

	// DefaultConvergenceThreshold stops refinement when the total squared
	// center movement falls below it.
	DefaultConvergenceThreshold int64 = 10
)

type options struct {
	languages           lang.Registry
	spread              int64
	clustersPerLanguage int
	maxIterations       int
	threshold           int64
	seed                int64
	partitions          int
	controller          *resource.Controller
	metricsCollector    MetricsCollector
	logger              *Logger
}

// Option configures pipeline constructor behavior.
type Option func(*options)

// WithLanguages sets the closed list of language tags the run recognizes.
// The order is significant: a language's position in the list is its code,
// and codes determine lane coordinates and sampling seeds.
//
// If no languages are given, lang.Default() is used.
func WithLanguages(tags ...string) Option {
	return func(o *options) {
		o.languages = lang.Registry(tags)
	}
}

// WithSpread sets the coordinate spacing between adjacent language lanes.
// Scores above the spread bleed into the next lane; pick a spread above the
// highest expected score to keep lanes disjoint.
func WithSpread(spread int64) Option {
	return func(o *options) {
		o.spread = spread
	}
}

// WithClustersPerLanguage sets how many seed centers are drawn per language.
// The total cluster count is clustersPerLanguage times the number of
// languages, which keeps the stratified quota exact by construction.
func WithClustersPerLanguage(n int) Option {
	return func(o *options) {
		o.clustersPerLanguage = n
	}
}

// WithMaxIterations caps the refinement loop. Reaching the cap is not an
// error; the run reports Converged == false.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithConvergenceThreshold sets the total squared center movement below
// which refinement stops.
func WithConvergenceThreshold(threshold int64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithSeed sets the base seed for deterministic sampling. Each language
// samples with seed + its code, so per-language draws are independent.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithPartitions sets the number of dataset partitions. More partitions
// increase parallelism up to the worker limit of the resource controller.
//
// Defaults to runtime.GOMAXPROCS(0).
func WithPartitions(n int) Option {
	return func(o *options) {
		o.partitions = n
	}
}

// WithResourceController sets the resource controller that bounds worker
// concurrency and I/O throughput. Pass nil for unbounded execution.
func WithResourceController(ctrl *resource.Controller) Option {
	return func(o *options) {
		o.controller = ctrl
	}
}

// WithMetricsCollector configures a metrics collector for monitoring the
// pipeline stages.
//
// Example with BasicMetricsCollector:
//
//	metrics := &langclust.BasicMetricsCollector{}
//	p, _ := langclust.New(langclust.WithMetricsCollector(metrics))
//	// ... run the pipeline ...
//	stats := metrics.GetStats()
//	fmt.Printf("Iterations: %d, Last shift: %d\n", stats.IterationCount, stats.LastShift)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for the pipeline stages.
//
// Example with JSON logging:
//
//	logger := langclust.NewJSONLogger(slog.LevelInfo)
//	p, _ := langclust.New(langclust.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		languages:           lang.Default(),
		spread:              DefaultSpread,
		clustersPerLanguage: DefaultClustersPerLanguage,
		maxIterations:       DefaultMaxIterations,
		threshold:           DefaultConvergenceThreshold,
		seed:                DefaultSeed,
		partitions:          runtime.GOMAXPROCS(0),
		metricsCollector:    NoopMetricsCollector{},
		logger:              NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
