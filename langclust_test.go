package langclust

import (
	"context"
	"testing"

	"github.com/hupe1980/langclust/dataset"
	"github.com/hupe1980/langclust/point"
	"github.com/hupe1980/langclust/posting"
	"github.com/hupe1980/langclust/sample"
	"github.com/hupe1980/langclust/util"
	"github.com/hupe1980/langclust/vectorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		optFns   []Option
		expected error
	}{
		{
			name:     "NoLanguages",
			optFns:   []Option{WithLanguages()},
			expected: ErrNoLanguages,
		},
		{
			name:     "InvalidSpread",
			optFns:   []Option{WithSpread(0)},
			expected: ErrInvalidSpread,
		},
		{
			name:     "InvalidClusterCount",
			optFns:   []Option{WithClustersPerLanguage(-1)},
			expected: ErrInvalidClusterCount,
		},
		{
			name:     "InvalidPartitions",
			optFns:   []Option{WithPartitions(0)},
			expected: ErrInvalidPartitions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.optFns...)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	// 12 default languages times 4 centers each.
	assert.Equal(t, 48, p.K())
}

func TestPipelineEndToEnd(t *testing.T) {
	p, err := New(
		WithLanguages("Java", "Python"),
		WithClustersPerLanguage(1),
		WithPartitions(2),
	)
	require.NoError(t, err)

	lines := []string{
		"1,1,101,,5,Java",   // Java question, answered
		"2,101,,1,10",       // its answer, score 10
		"1,2,,,-2,Python",   // Python question, answered
		"2,201,,2,3",        // its answer, score 3
		"1,3,,,7,Java",      // answerless question, dropped
	}

	result, err := p.Run(context.Background(), lines)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.Equal(t, 1, result.Iterations)
	require.Len(t, result.Centers, 2)

	// One question per language, so the centers settle on the points
	// themselves and every cluster is pure.
	require.Len(t, result.Stats, 2)

	// Sorted ascending by median score: Python (3) before Java (10).
	assert.Equal(t, "Python", result.Stats[0].Language)
	assert.Equal(t, int64(3), result.Stats[0].MedianScore)
	assert.Equal(t, 1, result.Stats[0].Size)
	assert.InDelta(t, 100.0, result.Stats[0].Percent, 1e-9)

	assert.Equal(t, "Java", result.Stats[1].Language)
	assert.Equal(t, int64(10), result.Stats[1].MedianScore)
	assert.Equal(t, 1, result.Stats[1].Size)
	assert.InDelta(t, 100.0, result.Stats[1].Percent, 1e-9)
}

func TestPipelineMalformedLine(t *testing.T) {
	p, err := New(WithLanguages("Java"), WithClustersPerLanguage(1))
	require.NoError(t, err)

	lines := []string{
		"1,1,101,,5,Java",
		"2,101,,1,10",
		"not,a,posting",
	}

	_, err = p.Run(context.Background(), lines)

	var malformed *posting.ErrMalformedRecord
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "not,a,posting", malformed.Line)
}

func TestPipelineUnknownLanguage(t *testing.T) {
	p, err := New(WithLanguages("Java"), WithClustersPerLanguage(1))
	require.NoError(t, err)

	lines := []string{
		"1,1,,,5,Rust",
		"2,101,,1,10",
	}

	_, err = p.Run(context.Background(), lines)

	var unknown *vectorize.ErrUnknownLanguage
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Rust", unknown.Tag)
}

func TestPipelineInsufficientSamplePool(t *testing.T) {
	p, err := New(WithLanguages("Java", "Python"), WithClustersPerLanguage(1))
	require.NoError(t, err)

	// No Python questions at all, so the Python seed quota cannot be met.
	lines := []string{
		"1,1,101,,5,Java",
		"2,101,,1,10",
	}

	_, err = p.Run(context.Background(), lines)

	var insufficient *sample.ErrInsufficientSamplePool
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Python", insufficient.Language)
}

func TestPipelineDeterministic(t *testing.T) {
	ctx := context.Background()

	rng := util.NewRNG(7)
	pts := rng.GenerateRandomPoints(600, 3, DefaultSpread, 500)

	run := func(partitions int) *Result {
		p, err := New(
			WithLanguages("Go", "Java", "Python"),
			WithClustersPerLanguage(2),
			WithPartitions(partitions),
		)
		require.NoError(t, err)

		ds := dataset.FromSlice(dataset.NewExecutor(nil, partitions), pts).Cache()
		result, err := p.Cluster(ctx, ds)
		require.NoError(t, err)
		return result
	}

	first := run(1)
	second := run(4)

	// Seeding and refinement are sequential per stage, so the partition
	// count must not change the outcome. Stats are compared under a
	// canonical order because equal medians sort ambiguously.
	assert.Equal(t, first.Centers, second.Centers)
	assert.Equal(t, first.Iterations, second.Iterations)
	assert.ElementsMatch(t, first.Stats, second.Stats)
}

func TestPipelineMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	p, err := New(
		WithLanguages("Java", "Python"),
		WithClustersPerLanguage(1),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	lines := []string{
		"1,1,101,,5,Java",
		"2,101,,1,10",
		"1,2,,,-2,Python",
		"2,201,,2,3",
	}

	_, err = p.Run(context.Background(), lines)
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.ParseCount)
	assert.Equal(t, int64(4), stats.ParseLines)
	assert.Equal(t, int64(1), stats.AssociateCount)
	assert.Equal(t, int64(1), stats.SeedCount)
	assert.Equal(t, int64(1), stats.IterationCount)
	assert.Equal(t, int64(0), stats.LastShift)
	assert.Equal(t, int64(1), stats.SummarizeCount)
	assert.Equal(t, int64(0), stats.ParseErrors)
}

func TestPipelineVectorizeCluster(t *testing.T) {
	ctx := context.Background()

	p, err := New(WithLanguages("Java"), WithClustersPerLanguage(1))
	require.NoError(t, err)

	points, err := p.Vectorize(ctx, []string{
		"1,1,101,,5,Java",
		"2,101,,1,10",
	})
	require.NoError(t, err)
	assert.True(t, points.Cached())

	collected, err := dataset.Collect(ctx, points)
	require.NoError(t, err)
	assert.Equal(t, []point.Point{{X: 0, Y: 10}}, collected)

	result, err := p.Cluster(ctx, points)
	require.NoError(t, err)
	assert.Equal(t, []point.Point{{X: 0, Y: 10}}, result.Centers)
}
