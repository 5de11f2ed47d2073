package dataset

import "context"

// Map applies fn to every element, producing a dataset with the same
// partitioning.
func Map[T, U any](ctx context.Context, d *Dataset[T], fn func(T) U) (*Dataset[U], error) {
	out := make([][]U, len(d.parts))

	err := d.exec.forEachPartition(ctx, len(d.parts), func(_ context.Context, i int) error {
		part := make([]U, len(d.parts[i]))
		for j, v := range d.parts[i] {
			part[j] = fn(v)
		}
		out[i] = part
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fromParts(d.exec, out), nil
}

// TryMap applies a fallible fn to every element. The first error aborts the
// transformation and cancels the remaining partitions.
func TryMap[T, U any](ctx context.Context, d *Dataset[T], fn func(T) (U, error)) (*Dataset[U], error) {
	out := make([][]U, len(d.parts))

	err := d.exec.forEachPartition(ctx, len(d.parts), func(ctx context.Context, i int) error {
		part := make([]U, len(d.parts[i]))
		for j, v := range d.parts[i] {
			u, err := fn(v)
			if err != nil {
				return err
			}
			part[j] = u

			if j%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
		}
		out[i] = part
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fromParts(d.exec, out), nil
}

// Filter keeps the elements for which pred returns true.
func Filter[T any](ctx context.Context, d *Dataset[T], pred func(T) bool) (*Dataset[T], error) {
	out := make([][]T, len(d.parts))

	err := d.exec.forEachPartition(ctx, len(d.parts), func(_ context.Context, i int) error {
		var part []T
		for _, v := range d.parts[i] {
			if pred(v) {
				part = append(part, v)
			}
		}
		out[i] = part
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fromParts(d.exec, out), nil
}

// KeyBy pairs every element with the key fn derives from it.
func KeyBy[K comparable, T any](ctx context.Context, d *Dataset[T], fn func(T) K) (*Dataset[Pair[K, T]], error) {
	return Map(ctx, d, func(v T) Pair[K, T] {
		return Pair[K, T]{Key: fn(v), Value: v}
	})
}

// Aggregate folds every partition independently and merges the partial
// results on the coordinator, in partition order.
func Aggregate[T, A any](ctx context.Context, d *Dataset[T], zero func() A, fold func(A, T) A, merge func(A, A) A) (A, error) {
	partials := make([]A, len(d.parts))

	err := d.exec.forEachPartition(ctx, len(d.parts), func(_ context.Context, i int) error {
		acc := zero()
		for _, v := range d.parts[i] {
			acc = fold(acc, v)
		}
		partials[i] = acc
		return nil
	})
	if err != nil {
		var a A
		return a, err
	}

	acc := zero()
	for _, p := range partials {
		acc = merge(acc, p)
	}
	return acc, nil
}
