// Package sample seeds the refinement loop with initial cluster centers
// drawn by single-pass reservoir sampling.
package sample

import (
	"context"
	"fmt"

	"github.com/hupe1980/langclust/dataset"
	"github.com/hupe1980/langclust/lang"
	"github.com/hupe1980/langclust/point"
)

// ErrInsufficientSamplePool indicates a sampling pool smaller than its
// quota. Seeding cannot proceed; this is an unrecoverable setup failure.
type ErrInsufficientSamplePool struct {
	Language string // empty for the unstratified fallback pool
	Need     int
	Have     int
}

func (e *ErrInsufficientSamplePool) Error() string {
	if e.Language == "" {
		return fmt.Sprintf("insufficient sample pool: need %d points, have %d", e.Need, e.Have)
	}
	return fmt.Sprintf("insufficient sample pool for %q: need %d points, have %d", e.Language, e.Need, e.Have)
}

// Centers produces exactly k initial centers from the point collection.
//
// The stratified path gives every registered language an equal quota of
// k / reg.Count() centers, sampled uniformly from that language's point
// stream with a reservoir seeded by baseSeed + languageCode, so repeated
// runs over the same input are reproducible. Every language must contribute
// at least its quota of points or seeding fails with
// *ErrInsufficientSamplePool.
//
// Degenerate fallback: when spread is smaller than the language count, the
// language index is no longer recoverable by integer division, so stratified
// quotas are meaningless; a single uniform sample of k points across all
// languages is taken instead. This branch exists for parameter robustness
// and is deliberately separate from the main path.
//
// k must be positive and divisible by reg.Count() (caller's responsibility;
// the pipeline constructor enforces it).
func Centers(ctx context.Context, points *dataset.Dataset[point.Point], reg lang.Registry, k int, spread, baseSeed int64) ([]point.Point, error) {
	if spread < int64(reg.Count()) {
		return uniformCenters(ctx, points, k, baseSeed)
	}

	quota := k / reg.Count()

	keyed, err := dataset.KeyBy(ctx, points, func(p point.Point) int64 { return p.X })
	if err != nil {
		return nil, err
	}

	sampled, err := dataset.SampleByKey(ctx, keyed, quota, func(code int64) int64 {
		return baseSeed + code
	})
	if err != nil {
		return nil, err
	}

	centers := make([]point.Point, 0, k)
	for i := 0; i < reg.Count(); i++ {
		code := int64(i) * spread
		label, _ := reg.Label(i)

		buf := sampled[code]
		if len(buf) < quota {
			return nil, &ErrInsufficientSamplePool{Language: label, Need: quota, Have: len(buf)}
		}
		centers = append(centers, buf...)
	}

	return centers, nil
}

func uniformCenters(ctx context.Context, points *dataset.Dataset[point.Point], k int, seed int64) ([]point.Point, error) {
	centers, err := dataset.SampleUniform(ctx, points, k, seed)
	if err != nil {
		return nil, err
	}
	if len(centers) < k {
		return nil, &ErrInsufficientSamplePool{Need: k, Have: len(centers)}
	}
	return centers, nil
}
