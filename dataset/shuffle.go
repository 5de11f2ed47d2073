package dataset

import (
	"context"
	"hash/maphash"
)

// shuffleSeed is fixed per process; keys only need to land consistently
// within one run.
var shuffleSeed = maphash.MakeSeed()

func bucketOf[K comparable](k K, n int) int {
	return int(maphash.Comparable(shuffleSeed, k) % uint64(n))
}

// shuffle redistributes keyed elements so that all pairs sharing a key land
// in the same target partition. Within a target partition, elements keep
// source-partition order, which makes downstream reductions reproducible for
// a fixed partitioning.
func shuffle[K comparable, V any](ctx context.Context, d *Dataset[Pair[K, V]]) ([][]Pair[K, V], error) {
	n := d.exec.partitions

	// Each source partition fills its own bucket row in parallel; rows are
	// concatenated per target afterwards so no locking is needed.
	local := make([][][]Pair[K, V], len(d.parts))

	err := d.exec.forEachPartition(ctx, len(d.parts), func(_ context.Context, i int) error {
		buckets := make([][]Pair[K, V], n)
		for _, pr := range d.parts[i] {
			b := bucketOf(pr.Key, n)
			buckets[b] = append(buckets[b], pr)
		}
		local[i] = buckets
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([][]Pair[K, V], n)
	for p := 0; p < n; p++ {
		for i := range local {
			out[p] = append(out[p], local[i][p]...)
		}
	}
	return out, nil
}

// GroupByKey produces one (key, values) group per distinct key. Iteration
// order over a group follows arrival order; the order of groups within a
// partition follows first key occurrence.
func GroupByKey[K comparable, V any](ctx context.Context, d *Dataset[Pair[K, V]]) (*Dataset[Pair[K, []V]], error) {
	sh, err := shuffle(ctx, d)
	if err != nil {
		return nil, err
	}

	out := make([][]Pair[K, []V], len(sh))

	err = d.exec.forEachPartition(ctx, len(sh), func(_ context.Context, i int) error {
		groups := make(map[K][]V)
		var order []K
		for _, pr := range sh[i] {
			if _, ok := groups[pr.Key]; !ok {
				order = append(order, pr.Key)
			}
			groups[pr.Key] = append(groups[pr.Key], pr.Value)
		}

		part := make([]Pair[K, []V], 0, len(order))
		for _, k := range order {
			part = append(part, Pair[K, []V]{Key: k, Value: groups[k]})
		}
		out[i] = part
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fromParts(d.exec, out), nil
}

// ReduceByKey combines all values sharing a key with fn. Values are combined
// locally per source partition before the shuffle, so only one element per
// (source partition, key) crosses partitions.
func ReduceByKey[K comparable, V any](ctx context.Context, d *Dataset[Pair[K, V]], fn func(V, V) V) (*Dataset[Pair[K, V]], error) {
	combined := make([][]Pair[K, V], len(d.parts))

	err := d.exec.forEachPartition(ctx, len(d.parts), func(_ context.Context, i int) error {
		combined[i] = reducePairs(d.parts[i], fn)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sh, err := shuffle(ctx, fromParts(d.exec, combined))
	if err != nil {
		return nil, err
	}

	out := make([][]Pair[K, V], len(sh))
	err = d.exec.forEachPartition(ctx, len(sh), func(_ context.Context, i int) error {
		out[i] = reducePairs(sh[i], fn)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fromParts(d.exec, out), nil
}

func reducePairs[K comparable, V any](pairs []Pair[K, V], fn func(V, V) V) []Pair[K, V] {
	acc := make(map[K]V, len(pairs))
	var order []K
	for _, pr := range pairs {
		if cur, ok := acc[pr.Key]; ok {
			acc[pr.Key] = fn(cur, pr.Value)
		} else {
			acc[pr.Key] = pr.Value
			order = append(order, pr.Key)
		}
	}

	out := make([]Pair[K, V], 0, len(order))
	for _, k := range order {
		out = append(out, Pair[K, V]{Key: k, Value: acc[k]})
	}
	return out
}

// Join performs an inner equi-join on key. Keys present on only one side
// produce no output. Left values are matched against right values in right
// arrival order.
func Join[K comparable, A, B any](ctx context.Context, left *Dataset[Pair[K, A]], right *Dataset[Pair[K, B]]) (*Dataset[Pair[K, Joined[A, B]]], error) {
	shL, err := shuffle(ctx, left)
	if err != nil {
		return nil, err
	}
	shR, err := shuffle(ctx, right)
	if err != nil {
		return nil, err
	}

	out := make([][]Pair[K, Joined[A, B]], len(shL))

	err = left.exec.forEachPartition(ctx, len(shL), func(_ context.Context, i int) error {
		build := make(map[K][]A)
		for _, pr := range shL[i] {
			build[pr.Key] = append(build[pr.Key], pr.Value)
		}

		var part []Pair[K, Joined[A, B]]
		for _, pr := range shR[i] {
			for _, a := range build[pr.Key] {
				part = append(part, Pair[K, Joined[A, B]]{
					Key:   pr.Key,
					Value: Joined[A, B]{Left: a, Right: pr.Value},
				})
			}
		}
		out[i] = part
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fromParts(left.exec, out), nil
}
