package charcode

import (
	"fmt"

	"qabot/internal/domain"
)

// Encoder maps text to a fixed-width vector of character code points.
// It is a lossy, order-sensitive fingerprint: the first Dimension runes are kept,
// anything beyond is dropped and missing positions are zero.
type Encoder struct {
	dimension int
}

// New creates an encoder producing vectors of the given dimension.
// A non-positive dimension is a programming error and panics.
func New(dimension int) *Encoder {
	if dimension <= 0 {
		panic(fmt.Sprintf("charcode: dimension must be positive, got %d", dimension))
	}
	return &Encoder{dimension: dimension}
}

// Name returns the identifier of this encoder implementation.
func (e *Encoder) Name() string { return "charcode" }

// Dimension returns the length of every produced vector.
func (e *Encoder) Dimension() int { return e.dimension }

// Encode returns the code point fingerprint of text.
func (e *Encoder) Encode(text string) domain.Vector {
	vec := make(domain.Vector, e.dimension)
	i := 0
	for _, r := range text {
		if i == e.dimension {
			break
		}
		vec[i] = float64(r)
		i++
	}
	return vec
}
