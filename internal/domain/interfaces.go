package domain

import "context"

// Vector is a fixed-length numeric fingerprint produced by an Encoder.
type Vector []float64

// QAPair is a question and its response as read from or written to the store file.
type QAPair struct {
	Question string
	Response string
}

// Entry is a stored pair together with the encoded form of its question.
// Encoded is always derived from Question by the store's current encoder.
type Entry struct {
	Question string
	Response string
	Encoded  Vector
}

// MatchResult is the outcome of a single lookup. Index is -1 when Found is false.
type MatchResult struct {
	Found bool
	Index int
	Score float64
	Entry Entry
}

// NotFound builds an unsuccessful result carrying the best score seen, if any.
func NotFound(score float64) MatchResult {
	return MatchResult{Found: false, Index: -1, Score: score}
}

// Encoder converts free text into a fixed-length vector.
type Encoder interface {
	Name() string
	Dimension() int
	Encode(text string) Vector
}

// Corrector supplies the response the engine should have given for a question it could not answer.
// An empty correction means the caller declined to teach.
//
//go:generate mockgen -source=interfaces.go -destination=../service/mocks/interfaces.go -package=mocks
type Corrector interface {
	Correct(ctx context.Context, question string) (string, error)
}
