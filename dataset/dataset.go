package dataset

import (
	"context"

	"github.com/hupe1980/langclust/resource"
	"golang.org/x/sync/errgroup"
)

// Executor runs partition tasks against a resource controller's worker
// budget. One executor is shared by all datasets of a run.
type Executor struct {
	ctrl       *resource.Controller
	partitions int
}

// NewExecutor creates an executor producing datasets with the given number
// of partitions. If partitions <= 0, the controller's worker budget is used.
func NewExecutor(ctrl *resource.Controller, partitions int) *Executor {
	if partitions <= 0 {
		partitions = ctrl.Workers()
	}
	return &Executor{
		ctrl:       ctrl,
		partitions: partitions,
	}
}

// Partitions returns the partition count of datasets built by this executor.
func (e *Executor) Partitions() int {
	return e.partitions
}

// forEachPartition runs fn for every partition index in parallel, bounded by
// the worker budget. The first error cancels the remaining tasks.
func (e *Executor) forEachPartition(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := e.ctrl.AcquireWorker(ctx); err != nil {
				return err
			}
			defer e.ctrl.ReleaseWorker()

			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i)
		})
	}
	return g.Wait()
}

// Dataset is a partitioned collection of elements.
type Dataset[T any] struct {
	exec   *Executor
	parts  [][]T
	cached bool
}

// Pair is a keyed element produced by KeyBy and consumed by the shuffle
// operations.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Joined is one matched (left, right) combination produced by Join.
type Joined[A, B any] struct {
	Left  A
	Right B
}

// FromSlice splits items into the executor's partition count, preserving
// element order across partition boundaries.
func FromSlice[T any](exec *Executor, items []T) *Dataset[T] {
	n := exec.partitions
	parts := make([][]T, n)

	chunk := (len(items) + n - 1) / n
	for i := 0; i < n; i++ {
		lo := i * chunk
		if lo > len(items) {
			lo = len(items)
		}
		hi := lo + chunk
		if hi > len(items) {
			hi = len(items)
		}
		parts[i] = items[lo:hi]
	}

	return &Dataset[T]{exec: exec, parts: parts}
}

func fromParts[T any](exec *Executor, parts [][]T) *Dataset[T] {
	return &Dataset[T]{exec: exec, parts: parts}
}

// Executor returns the executor this dataset is bound to.
func (d *Dataset[T]) Executor() *Executor {
	return d.exec
}

// Partitions returns the number of partitions.
func (d *Dataset[T]) Partitions() int {
	return len(d.parts)
}

// Count returns the total number of elements across all partitions.
func (d *Dataset[T]) Count() int {
	total := 0
	for _, p := range d.parts {
		total += len(p)
	}
	return total
}

// Cache marks the dataset as pinned for repeated scans. The local backend
// already holds partitions in memory, so this is a lifetime hint only; a
// distributed backend would materialize here.
func (d *Dataset[T]) Cache() *Dataset[T] {
	d.cached = true
	return d
}

// Cached reports whether Cache was called.
func (d *Dataset[T]) Cached() bool {
	return d.cached
}

// Collect materializes the dataset into a single slice in partition order.
// Call this only on bounded-size results.
func Collect[T any](ctx context.Context, d *Dataset[T]) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]T, 0, d.Count())
	for _, p := range d.parts {
		out = append(out, p...)
	}
	return out, nil
}
