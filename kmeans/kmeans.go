// Package kmeans implements the iterative centroid-refinement loop over the
// partitioned point collection.
//
// Each iteration is a synchronous barrier: points are assigned to their
// nearest center and reduced to per-center partial sums in parallel, then the
// coordinator recomputes the centers and decides whether to continue. The
// center array lives only in the coordinator and is read-only inside the
// parallel stages.
package kmeans

import (
	"context"
	"slices"

	"github.com/hupe1980/langclust/dataset"
	"github.com/hupe1980/langclust/point"
)

// Options configures the refinement loop.
type Options struct {
	// MaxIterations caps the loop. Reaching it is not an error; the current
	// centers are returned with Converged == false.
	MaxIterations int

	// ConvergenceThreshold is the total squared center movement below which
	// the loop stops.
	ConvergenceThreshold int64

	// OnIteration, if set, is called after every completed iteration with
	// the total squared center movement.
	OnIteration func(iteration int, shift int64)

	// OnEmptyCluster, if set, is called for every center that received no
	// points in an iteration. Empty clusters keep their previous position;
	// this is accepted behavior, not a defect.
	OnEmptyCluster func(iteration, center int)
}

// DefaultOptions are the refinement defaults.
var DefaultOptions = Options{
	MaxIterations:        100,
	ConvergenceThreshold: 10,
}

// Result is the outcome of a refinement run.
type Result struct {
	// Centers are the final centers, converged or not.
	Centers []point.Point

	// Iterations is the number of iterations executed.
	Iterations int

	// Converged distinguishes threshold convergence from stopping on the
	// iteration budget.
	Converged bool

	// Shift is the total squared center movement of the last iteration.
	Shift int64
}

// partial accumulates a cluster's coordinate sums for the mean update.
type partial struct {
	sumX  int64
	sumY  int64
	count int64
}

func addPartial(a, b partial) partial {
	return partial{
		sumX:  a.sumX + b.sumX,
		sumY:  a.sumY + b.sumY,
		count: a.count + b.count,
	}
}

// Refine runs the assignment/update loop from the given seed centers until
// the total squared center movement drops below the convergence threshold or
// the iteration budget is exhausted. The seed slice is not mutated.
//
// Points should be cached by the caller: the collection is scanned once per
// iteration.
func Refine(ctx context.Context, points *dataset.Dataset[point.Point], seeds []point.Point, opts Options) (*Result, error) {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptions.MaxIterations
	}

	centers := slices.Clone(seeds)
	k := len(centers)

	var shift int64
	for iter := 1; ; iter++ {
		// Assignment step: nearest center per point, reduced to per-center
		// sums. Only up to k pairs come back to the coordinator.
		assigned, err := dataset.Map(ctx, points, func(p point.Point) dataset.Pair[int, partial] {
			return dataset.Pair[int, partial]{
				Key:   point.Nearest(p, centers),
				Value: partial{sumX: p.X, sumY: p.Y, count: 1},
			}
		})
		if err != nil {
			return nil, err
		}

		sums, err := dataset.ReduceByKey(ctx, assigned, addPartial)
		if err != nil {
			return nil, err
		}

		collected, err := dataset.Collect(ctx, sums)
		if err != nil {
			return nil, err
		}

		// Update step: integer mean per non-empty cluster; empty clusters
		// keep their previous value.
		next := slices.Clone(centers)
		seen := make([]bool, k)
		for _, pr := range collected {
			next[pr.Key] = point.Point{
				X: pr.Value.sumX / pr.Value.count,
				Y: pr.Value.sumY / pr.Value.count,
			}
			seen[pr.Key] = true
		}

		if opts.OnEmptyCluster != nil {
			for j, ok := range seen {
				if !ok {
					opts.OnEmptyCluster(iter, j)
				}
			}
		}

		shift = point.TotalShift(centers, next)
		centers = next

		if opts.OnIteration != nil {
			opts.OnIteration(iter, shift)
		}

		if shift < opts.ConvergenceThreshold {
			return &Result{Centers: centers, Iterations: iter, Converged: true, Shift: shift}, nil
		}
		if iter >= opts.MaxIterations {
			return &Result{Centers: centers, Iterations: iter, Converged: false, Shift: shift}, nil
		}
	}
}

// AssignmentCost returns the summed squared distance of every point to its
// nearest center. It is non-increasing across refinement iterations until
// convergence.
func AssignmentCost(ctx context.Context, points *dataset.Dataset[point.Point], centers []point.Point) (int64, error) {
	return dataset.Aggregate(ctx, points,
		func() int64 { return 0 },
		func(acc int64, p point.Point) int64 {
			return acc + point.SquaredL2(p, centers[point.Nearest(p, centers)])
		},
		func(a, b int64) int64 { return a + b },
	)
}
