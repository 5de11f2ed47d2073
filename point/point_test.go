package point

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, int64(0), SquaredL2(Point{3, 4}, Point{3, 4}))
	assert.Equal(t, int64(25), SquaredL2(Point{0, 0}, Point{3, 4}))
	assert.Equal(t, int64(25), SquaredL2(Point{3, 4}, Point{0, 0}))
}

func TestNearest(t *testing.T) {
	centers := []Point{{0, 0}, {10, 0}, {20, 0}}

	assert.Equal(t, 0, Nearest(Point{1, 0}, centers))
	assert.Equal(t, 2, Nearest(Point{19, 0}, centers))

	// Equidistant between centers 0 and 1: first index wins.
	assert.Equal(t, 0, Nearest(Point{5, 0}, centers))
}

func TestMean(t *testing.T) {
	got := Mean([]Point{{1, 2}, {2, 3}})
	// Integer means truncate toward zero.
	assert.Equal(t, Point{1, 2}, got)

	got = Mean([]Point{{4, 8}})
	assert.Equal(t, Point{4, 8}, got)
}

func TestTotalShift(t *testing.T) {
	centers := []Point{{0, 0}, {10, 10}}

	// Distance of an array to itself is zero.
	assert.Equal(t, int64(0), TotalShift(centers, centers))

	moved := []Point{{1, 0}, {10, 12}}
	assert.Equal(t, int64(1+4), TotalShift(centers, moved))
}
