package similarity

import (
	"math"

	"github.com/cockroachdb/errors"

	"qabot/internal/domain"
)

// Kind tells the match engine which direction is better.
type Kind int

const (
	// KindSimilarity scores are better when higher.
	KindSimilarity Kind = iota
	// KindDistance scores are better when lower.
	KindDistance
)

func (k Kind) String() string {
	if k == KindDistance {
		return "distance"
	}
	return "similarity"
}

// Scorer scores one stored entry against a prepared query.
type Scorer func(entry domain.Entry) float64

// Metric compares a query to stored entries. Prepare runs once per lookup
// so that query-side work (encoding, attention) is not repeated per entry.
type Metric interface {
	Name() string
	Kind() Kind
	Prepare(query string, entries []domain.Entry) Scorer
}

// Names of the registered metrics, as used in configuration.
const (
	NameCosine       = "cosine"
	NameAttention    = "attention"
	NameEditDistance = "edit_distance"
	NameExact        = "exact"
)

// ByName returns the metric registered under name. enc is required by the vector metrics.
func ByName(name string, enc domain.Encoder) (Metric, error) {
	switch name {
	case NameCosine:
		return NewCosine(enc), nil
	case NameAttention:
		return NewAttention(enc), nil
	case NameEditDistance, "":
		return NewEditDistance(), nil
	case NameExact:
		return NewExact(), nil
	default:
		return nil, errors.WithHint(
			errors.Wrapf(domain.ErrUnknownMetric, "metric %q", name),
			"use one of cosine, attention, edit_distance, exact")
	}
}

type cosineMetric struct {
	enc domain.Encoder
}

// NewCosine compares encoded questions by cosine similarity.
func NewCosine(enc domain.Encoder) Metric { return &cosineMetric{enc: enc} }

func (m *cosineMetric) Name() string { return NameCosine }
func (m *cosineMetric) Kind() Kind { return KindSimilarity }

func (m *cosineMetric) Prepare(query string, _ []domain.Entry) Scorer {
	q := m.enc.Encode(query)
	return func(e domain.Entry) float64 { return Cosine(q, e.Encoded) }
}

type attentionMetric struct {
	enc domain.Encoder
}

// NewAttention replaces the encoded query by its attention-weighted mix of every
// stored question before cosine comparison. Keys and values are the stored vectors.
func NewAttention(enc domain.Encoder) Metric { return &attentionMetric{enc: enc} }

func (m *attentionMetric) Name() string { return NameAttention }
func (m *attentionMetric) Kind() Kind { return KindSimilarity }

func (m *attentionMetric) Prepare(query string, entries []domain.Entry) Scorer {
	keys := make([]domain.Vector, len(entries))
	for i, e := range entries {
		keys[i] = e.Encoded
	}
	q := Attend(m.enc.Encode(query), keys, keys)
	return func(e domain.Entry) float64 { return Cosine(q, e.Encoded) }
}

type editDistanceMetric struct{}

// NewEditDistance compares raw question strings by Levenshtein distance.
func NewEditDistance() Metric { return editDistanceMetric{} }

func (editDistanceMetric) Name() string { return NameEditDistance }
func (editDistanceMetric) Kind() Kind { return KindDistance }

func (editDistanceMetric) Prepare(query string, _ []domain.Entry) Scorer {
	return func(e domain.Entry) float64 { return float64(Levenshtein(query, e.Question)) }
}

type exactMetric struct{}

// NewExact is a distance of 0 for identical questions and +Inf otherwise,
// so no finite tolerance accepts a near miss.
func NewExact() Metric { return exactMetric{} }

func (exactMetric) Name() string { return NameExact }
func (exactMetric) Kind() Kind { return KindDistance }

func (exactMetric) Prepare(query string, _ []domain.Entry) Scorer {
	return func(e domain.Entry) float64 {
		if e.Question == query {
			return 0
		}
		return math.Inf(1)
	}
}
