package dataset

import (
	"context"

	"github.com/hupe1980/langclust/util"
)

// reservoir is a single-pass uniform sample of fixed capacity over a stream
// of unknown length.
type reservoir[V any] struct {
	rng   *util.RNG
	buf   []V
	seen  int64
	quota int
}

func newReservoir[V any](quota int, seed int64) *reservoir[V] {
	return &reservoir[V]{
		rng:   util.NewRNG(seed),
		buf:   make([]V, 0, quota),
		quota: quota,
	}
}

// offer feeds the next stream element. The first quota elements fill the
// buffer; element i (1-based, i > quota) replaces slot j when a uniform draw
// j in [0, i) lands inside [0, quota).
func (r *reservoir[V]) offer(v V) {
	r.seen++
	if len(r.buf) < r.quota {
		r.buf = append(r.buf, v)
		return
	}
	if j := r.rng.Int63n(r.seen); j < int64(r.quota) {
		r.buf[j] = v
	}
}

// SampleUniform takes one uniform reservoir sample of up to n elements
// across the whole dataset. The scan is sequential in partition order:
// reservoir state depends on element ordering.
func SampleUniform[T any](ctx context.Context, d *Dataset[T], n int, seed int64) ([]T, error) {
	res := newReservoir[T](n, seed)
	for _, part := range d.parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, v := range part {
			res.offer(v)
		}
	}
	return res.buf, nil
}

// SampleByKey keeps an independent reservoir of quota elements per key, with
// the per-key sampling seed derived by seedFn. Returned buffers may be
// shorter than quota when a key's stream is smaller; callers decide whether
// that is fatal.
//
// The scan is sequential within a key's stream (required by the reservoir);
// this backend scans all partitions in order, which trivially satisfies that.
func SampleByKey[K comparable, V any](ctx context.Context, d *Dataset[Pair[K, V]], quota int, seedFn func(K) int64) (map[K][]V, error) {
	reservoirs := make(map[K]*reservoir[V])

	for _, part := range d.parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pr := range part {
			res, ok := reservoirs[pr.Key]
			if !ok {
				res = newReservoir[V](quota, seedFn(pr.Key))
				reservoirs[pr.Key] = res
			}
			res.offer(pr.Value)
		}
	}

	out := make(map[K][]V, len(reservoirs))
	for k, res := range reservoirs {
		out[k] = res.buf
	}
	return out, nil
}
