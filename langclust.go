// Package langclust clusters programming-language Q&A postings by language
// and answer popularity.
//
// A run parses a posting dump, pairs every question with its highest-scoring
// answer, projects the pairs onto a 2-D integer plane (language lane on the
// X axis, best answer score on the Y axis), refines k-means centers seeded
// per language, and reports per-cluster statistics sorted by median score.
//
// All stages run on the partitioned dataset substrate in the dataset
// package, so a run parallelizes across partitions while staying fully
// deterministic for a fixed seed and language list.
package langclust

import (
	"context"
	"time"

	"github.com/hupe1980/langclust/associate"
	"github.com/hupe1980/langclust/dataset"
	"github.com/hupe1980/langclust/kmeans"
	"github.com/hupe1980/langclust/lang"
	"github.com/hupe1980/langclust/point"
	"github.com/hupe1980/langclust/posting"
	"github.com/hupe1980/langclust/sample"
	"github.com/hupe1980/langclust/summary"
	"github.com/hupe1980/langclust/vectorize"
)

// Pipeline is a configured clustering run. It is safe for concurrent use;
// each Run builds its own datasets.
type Pipeline struct {
	languages           lang.Registry
	spread              int64
	clustersPerLanguage int
	maxIterations       int
	threshold           int64
	seed                int64
	partitions          int
	exec                *dataset.Executor
	metrics             MetricsCollector
	logger              *Logger
}

// Result is the outcome of a pipeline run.
type Result struct {
	// Stats are the per-cluster statistics, sorted ascending by median score.
	Stats []summary.ClusterStat

	// Centers are the final cluster centers.
	Centers []point.Point

	// Iterations is the number of refinement iterations executed.
	Iterations int

	// Converged distinguishes threshold convergence from stopping on the
	// iteration budget.
	Converged bool
}

// New creates a Pipeline from the given options.
func New(optFns ...Option) (*Pipeline, error) {
	opts := applyOptions(optFns)

	if opts.languages.Count() == 0 {
		return nil, ErrNoLanguages
	}

	if opts.spread <= 0 {
		return nil, ErrInvalidSpread
	}

	if opts.clustersPerLanguage <= 0 {
		return nil, ErrInvalidClusterCount
	}

	if opts.partitions <= 0 {
		return nil, ErrInvalidPartitions
	}

	return &Pipeline{
		languages:           opts.languages,
		spread:              opts.spread,
		clustersPerLanguage: opts.clustersPerLanguage,
		maxIterations:       opts.maxIterations,
		threshold:           opts.threshold,
		seed:                opts.seed,
		partitions:          opts.partitions,
		exec:                dataset.NewExecutor(opts.controller, opts.partitions),
		metrics:             opts.metricsCollector,
		logger:              opts.logger,
	}, nil
}

// K returns the total cluster count of a run.
func (p *Pipeline) K() int {
	return p.clustersPerLanguage * p.languages.Count()
}

// Run executes the pipeline over the given dump lines.
//
// A malformed line, an unknown language tag, or a language without enough
// answered questions to fill its seed quota aborts the run with an error;
// partial results are never returned.
func (p *Pipeline) Run(ctx context.Context, lines []string) (*Result, error) {
	points, err := p.Vectorize(ctx, lines)
	if err != nil {
		return nil, err
	}

	return p.Cluster(ctx, points)
}

// Vectorize parses dump lines and projects every answered question onto the
// 2-D plane. The returned dataset is cached, ready for repeated passes.
func (p *Pipeline) Vectorize(ctx context.Context, lines []string) (*dataset.Dataset[point.Point], error) {
	start := time.Now()

	postings, err := dataset.TryMap(ctx, dataset.FromSlice(p.exec, lines), posting.Parse)

	p.metrics.RecordParse(len(lines), time.Since(start), err)
	p.logger.LogParse(ctx, len(lines), err)

	if err != nil {
		return nil, err
	}

	start = time.Now()

	scored, err := associate.BestScores(ctx, postings)

	p.metrics.RecordAssociate(time.Since(start), err)
	p.logger.LogAssociate(ctx, err)

	if err != nil {
		return nil, err
	}

	points, err := vectorize.Points(ctx, scored, p.languages, p.spread)
	if err != nil {
		return nil, err
	}

	return points.Cache(), nil
}

// Cluster seeds centers from the given points, refines them, and summarizes
// the resulting clusters.
func (p *Pipeline) Cluster(ctx context.Context, points *dataset.Dataset[point.Point]) (*Result, error) {
	k := p.K()
	start := time.Now()

	seeds, err := sample.Centers(ctx, points, p.languages, k, p.spread, p.seed)

	p.metrics.RecordSeed(k, time.Since(start), err)
	p.logger.LogSeed(ctx, k, err)

	if err != nil {
		return nil, err
	}

	iterStart := time.Now()
	refined, err := kmeans.Refine(ctx, points, seeds, kmeans.Options{
		MaxIterations:        p.maxIterations,
		ConvergenceThreshold: p.threshold,
		OnIteration: func(iteration int, shift int64) {
			p.metrics.RecordIteration(iteration, shift, time.Since(iterStart))
			p.logger.LogIteration(ctx, iteration, shift)
			iterStart = time.Now()
		},
		OnEmptyCluster: func(iteration, center int) {
			p.logger.LogEmptyCluster(ctx, iteration, center)
		},
	})

	if err != nil {
		p.logger.LogRefine(ctx, 0, false, err)
		return nil, err
	}

	p.logger.LogRefine(ctx, refined.Iterations, refined.Converged, nil)

	start = time.Now()

	stats, err := summary.Stats(ctx, points, refined.Centers, p.languages, p.spread)

	p.metrics.RecordSummarize(len(stats), time.Since(start), err)
	p.logger.LogSummary(ctx, len(stats), err)

	if err != nil {
		return nil, err
	}

	return &Result{
		Stats:      stats,
		Centers:    refined.Centers,
		Iterations: refined.Iterations,
		Converged:  refined.Converged,
	}, nil
}
