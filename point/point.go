// Package point provides the 2-D integer point space the pipeline clusters
// in, along with the squared Euclidean distance kernel used for assignment
// and convergence checks.
package point

// Point is a derived (language code, score) coordinate pair. The first
// coordinate is languageIndex * spread, the second the question's best
// answer score. Cluster centers share this shape.
type Point struct {
	X int64
	Y int64
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two points.
func SquaredL2(a, b Point) int64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Nearest returns the index of the center closest to p by squared L2
// distance. Comparison is strict less-than, so the first of several
// equidistant centers wins.
func Nearest(p Point, centers []Point) int {
	best := 0
	min := SquaredL2(p, centers[0])
	for i := 1; i < len(centers); i++ {
		if d := SquaredL2(p, centers[i]); d < min {
			min = d
			best = i
		}
	}
	return best
}

// Mean returns the componentwise integer mean of pts, truncated toward zero.
// pts must be non-empty (caller's responsibility).
func Mean(pts []Point) Point {
	var sx, sy int64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := int64(len(pts))
	return Point{X: sx / n, Y: sy / n}
}

// TotalShift returns the summed squared distance between two center arrays
// of equal length. Assumes len(old) == len(next) (caller's responsibility).
func TotalShift(old, next []Point) int64 {
	var total int64
	for i := range old {
		total += SquaredL2(old[i], next[i])
	}
	return total
}
