package similarity

import (
	"math"

	"qabot/internal/domain"
)

// Dot returns the dot product of a and b over their common length.
func Dot(a, b domain.Vector) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the euclidean length of v.
func Norm(v domain.Vector) float64 {
	return math.Sqrt(Dot(v, v))
}

// Cosine returns the cosine similarity of a and b.
// A zero-norm operand has similarity 0 to every vector, another zero vector included.
func Cosine(a, b domain.Vector) float64 {
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	s := Dot(a, b) / (na * nb)
	// rounding can push identical vectors slightly past 1
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
