// Package summary produces the final per-cluster statistics and renders the
// ranked result table.
package summary

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/hupe1980/langclust/dataset"
	"github.com/hupe1980/langclust/lang"
	"github.com/hupe1980/langclust/point"
)

// ClusterStat describes one non-empty cluster.
type ClusterStat struct {
	// Language is the most frequent language label in the cluster.
	Language string

	// Percent is that language's share of the cluster.
	Percent float64

	// Size is the number of points assigned to the cluster.
	Size int

	// MedianScore is the median of the cluster's scores. For an even count
	// it is the truncated mean of the two middle values.
	MedianScore int64
}

// Stats assigns every point to its nearest final center, using the same
// first-index-wins rule as the refinement loop, and reduces each non-empty
// cluster to a ClusterStat. The result is sorted ascending by median score.
//
// The per-cluster work runs inside the dataset; only the (at most K) stats
// are collected.
func Stats(ctx context.Context, points *dataset.Dataset[point.Point], centers []point.Point, reg lang.Registry, spread int64) ([]ClusterStat, error) {
	assigned, err := dataset.KeyBy(ctx, points, func(p point.Point) int {
		return point.Nearest(p, centers)
	})
	if err != nil {
		return nil, err
	}

	grouped, err := dataset.GroupByKey(ctx, assigned)
	if err != nil {
		return nil, err
	}

	clusters, err := dataset.Map(ctx, grouped, func(pr dataset.Pair[int, []point.Point]) ClusterStat {
		return statOf(pr.Value, reg, spread)
	})
	if err != nil {
		return nil, err
	}

	stats, err := dataset.Collect(ctx, clusters)
	if err != nil {
		return nil, err
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].MedianScore < stats[j].MedianScore
	})
	return stats, nil
}

// statOf reduces one cluster's points. pts is non-empty: GroupByKey never
// emits empty groups.
func statOf(pts []point.Point, reg lang.Registry, spread int64) ClusterStat {
	counts := make(map[int64]int)
	for _, p := range pts {
		counts[p.X]++
	}

	// Most frequent language code; ties go to the lowest code so the result
	// does not depend on map iteration order.
	var dominant int64
	best := -1
	for code, n := range counts {
		if n > best || (n == best && code < dominant) {
			dominant = code
			best = n
		}
	}

	label, ok := reg.Label(int(dominant / spread))
	if !ok {
		// Only reachable with a degenerate spread, where language recovery
		// is lossy by construction.
		label = "unknown"
	}

	scores := make([]int64, len(pts))
	for i, p := range pts {
		scores[i] = p.Y
	}

	return ClusterStat{
		Language:    label,
		Percent:     100 * float64(best) / float64(len(pts)),
		Size:        len(pts),
		MedianScore: median(scores),
	}
}

// median computes the integer median of scores: the middle value for an odd
// count, the truncated mean of the two middle values for an even count.
func median(scores []int64) int64 {
	sort.Slice(scores, func(i, j int) bool { return scores[i] < scores[j] })

	mid := len(scores) / 2
	if len(scores)%2 == 1 {
		return scores[mid]
	}
	return (scores[mid-1] + scores[mid]) / 2
}

// WriteTable renders the stats as a fixed-width table, one row per cluster
// in the given order.
func WriteTable(w io.Writer, stats []ClusterStat) error {
	if _, err := fmt.Fprintf(w, "%10s  %-14s %8s %10s\n", "SCORE", "LANGUAGE", "PURITY", "SIZE"); err != nil {
		return err
	}
	for _, s := range stats {
		if _, err := fmt.Fprintf(w, "%10d  %-14s %7.2f%% %10d\n", s.MedianScore, s.Language, s.Percent, s.Size); err != nil {
			return err
		}
	}
	return nil
}
