package sample

import (
	"context"
	"testing"

	"github.com/hupe1980/langclust/dataset"
	"github.com/hupe1980/langclust/lang"
	"github.com/hupe1980/langclust/point"
	"github.com/hupe1980/langclust/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPoints(pts []point.Point) *dataset.Dataset[point.Point] {
	ctrl := resource.NewController(resource.Config{MaxWorkers: 4})
	exec := dataset.NewExecutor(ctrl, 3)
	return dataset.FromSlice(exec, pts)
}

func stratifiedPoints(reg lang.Registry, spread int64, perLang int) []point.Point {
	var pts []point.Point
	for i := 0; i < reg.Count(); i++ {
		for j := 0; j < perLang; j++ {
			pts = append(pts, point.Point{X: int64(i) * spread, Y: int64(j)})
		}
	}
	return pts
}

func TestCentersStratified(t *testing.T) {
	reg := lang.Registry{"Java", "Python", "Go"}
	const spread = 1000
	k := 2 * reg.Count()

	d := newPoints(stratifiedPoints(reg, spread, 50))

	centers, err := Centers(context.Background(), d, reg, k, spread, 1)
	require.NoError(t, err)

	// Output length always equals k exactly.
	require.Len(t, centers, k)

	// Each language is represented exactly k / numLanguages times.
	counts := make(map[int64]int)
	for _, c := range centers {
		counts[c.X]++
	}
	for i := 0; i < reg.Count(); i++ {
		assert.Equal(t, 2, counts[int64(i)*spread])
	}
}

func TestCentersReproducible(t *testing.T) {
	reg := lang.Registry{"Java", "Python"}
	const spread = 1000

	d := newPoints(stratifiedPoints(reg, spread, 100))

	c1, err := Centers(context.Background(), d, reg, 4, spread, 7)
	require.NoError(t, err)
	c2, err := Centers(context.Background(), d, reg, 4, spread, 7)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
}

func TestCentersInsufficientPool(t *testing.T) {
	reg := lang.Registry{"Java", "Python"}
	const spread = 1000

	// Python has a single point but the quota is 2.
	pts := []point.Point{
		{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3},
		{X: spread, Y: 1},
	}

	_, err := Centers(context.Background(), newPoints(pts), reg, 4, spread, 1)
	require.Error(t, err)

	var pool *ErrInsufficientSamplePool
	require.ErrorAs(t, err, &pool)
	assert.Equal(t, "Python", pool.Language)
	assert.Equal(t, 2, pool.Need)
	assert.Equal(t, 1, pool.Have)
}

func TestCentersEmptyLanguage(t *testing.T) {
	reg := lang.Registry{"Java", "Python"}
	const spread = 1000

	// Python has no points at all.
	pts := []point.Point{{X: 0, Y: 1}, {X: 0, Y: 2}}

	_, err := Centers(context.Background(), newPoints(pts), reg, 2, spread, 1)

	var pool *ErrInsufficientSamplePool
	require.ErrorAs(t, err, &pool)
	assert.Equal(t, "Python", pool.Language)
	assert.Zero(t, pool.Have)
}

func TestCentersDegenerateSpreadFallsBackToUniform(t *testing.T) {
	reg := lang.Registry{"Java", "Python", "Go"}

	// Spread below the language count: stratification is unrecoverable, the
	// uniform branch must produce k centers regardless of language balance.
	const spread = 2

	pts := make([]point.Point, 0, 100)
	for i := 0; i < 100; i++ {
		pts = append(pts, point.Point{X: 0, Y: int64(i)})
	}

	centers, err := Centers(context.Background(), newPoints(pts), reg, 6, spread, 1)
	require.NoError(t, err)
	assert.Len(t, centers, 6)
}

func TestCentersDegenerateSpreadInsufficientPool(t *testing.T) {
	reg := lang.Registry{"Java", "Python", "Go"}

	pts := []point.Point{{X: 0, Y: 1}}

	_, err := Centers(context.Background(), newPoints(pts), reg, 6, 1, 1)

	var pool *ErrInsufficientSamplePool
	require.ErrorAs(t, err, &pool)
	assert.Empty(t, pool.Language)
	assert.Equal(t, 6, pool.Need)
}
