package similarity

import (
	"math"

	"qabot/internal/domain"
)

// Softmax turns scores into positive weights summing to 1.
// The maximum is subtracted before exponentiation so large scores never overflow.
func Softmax(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	weights := make([]float64, len(scores))
	sum := 0.0
	for i, s := range scores {
		weights[i] = math.Exp(s - maxScore)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// Attend mixes values with softmax(query·key) weights. keys and values are paired by index.
// The result has the query's length; with no keys it is the zero vector.
func Attend(query domain.Vector, keys, values []domain.Vector) domain.Vector {
	out := make(domain.Vector, len(query))
	if len(keys) == 0 {
		return out
	}
	scores := make([]float64, len(keys))
	for i, k := range keys {
		scores[i] = Dot(query, k)
	}
	for i, w := range Softmax(scores) {
		v := values[i]
		for d := range out {
			if d < len(v) {
				out[d] += w * v[d]
			}
		}
	}
	return out
}
