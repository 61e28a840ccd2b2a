package matcher

import (
	"math"

	"qabot/internal/domain"
	"qabot/internal/similarity"
)

// DefaultTolerance is the largest accepted edit distance.
const DefaultTolerance = 5

// Engine selects the best stored entry for a query with a single metric.
type Engine struct {
	metric        similarity.Metric
	tolerance     float64
	minSimilarity float64
	gateSimilar   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTolerance sets the largest distance counted as a match for distance metrics.
func WithTolerance(t float64) Option {
	return func(e *Engine) { e.tolerance = t }
}

// WithMinSimilarity rejects similarity matches scoring below s.
// Without it any non-empty store yields a match.
func WithMinSimilarity(s float64) Option {
	return func(e *Engine) {
		e.minSimilarity = s
		e.gateSimilar = true
	}
}

// New creates an engine for metric.
func New(metric similarity.Metric, opts ...Option) *Engine {
	e := &Engine{metric: metric, tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Metric returns the active metric.
func (e *Engine) Metric() similarity.Metric { return e.metric }

// FindBest scans entries in order and returns the best one under the engine's acceptance rule.
// Ties keep the earliest entry.
func (e *Engine) FindBest(query string, entries []domain.Entry) domain.MatchResult {
	if len(entries) == 0 {
		return domain.NotFound(0)
	}
	score := e.metric.Prepare(query, entries)
	distance := e.metric.Kind() == similarity.KindDistance

	bestIdx := -1
	best := math.Inf(-1)
	if distance {
		best = math.Inf(1)
	}
	for i := range entries {
		s := score(entries[i])
		if bestIdx == -1 || (distance && s < best) || (!distance && s > best) {
			best = s
			bestIdx = i
		}
	}

	if distance && best > e.tolerance {
		return domain.NotFound(best)
	}
	if !distance && e.gateSimilar && best < e.minSimilarity {
		return domain.NotFound(best)
	}
	return domain.MatchResult{Found: true, Index: bestIdx, Score: best, Entry: entries[bestIdx]}
}
