package service

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"qabot/internal/domain"
	"qabot/internal/matcher"
	"qabot/internal/vectorstore"
	"qabot/internal/vectorstore/textfile"
)

// Journal durably records learned pairs.
type Journal interface {
	Append(question, response string) error
}

// Greeter answers self-introductions before any lookup.
type Greeter interface {
	Greet(text string) (string, bool)
}

// Source tells where a reply came from.
type Source int

const (
	SourceUnknown Source = iota
	SourceGreeting
	SourceMatch
	SourceLearned
)

func (s Source) String() string {
	switch s {
	case SourceGreeting:
		return "greeting"
	case SourceMatch:
		return "match"
	case SourceLearned:
		return "learned"
	default:
		return "unknown"
	}
}

// Reply is the outcome of one conversational turn.
type Reply struct {
	Text   string
	Source Source
	Match  domain.MatchResult
}

// Stats summarises the service state.
type Stats struct {
	Entries  int
	Capacity int
	Metric   string
}

type QAServiceImpl struct {
	store   vectorstore.Storage
	engine  *matcher.Engine
	journal Journal
	greeter Greeter
	logger  *zap.Logger
}

// NewQAService wires the store, match engine and journal. greeter may be nil.
func NewQAService(store vectorstore.Storage, engine *matcher.Engine, journal Journal, greeter Greeter, logger *zap.Logger) *QAServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QAServiceImpl{store: store, engine: engine, journal: journal, greeter: greeter, logger: logger}
}

// Ingest bulk loads the store file at path. An unreadable file leaves the store as is
// and returns an error wrapping domain.ErrSourceUnavailable; callers may carry on.
func (s *QAServiceImpl) Ingest(path string) (int, error) {
	pairs, stats, err := textfile.Load(path)
	if err != nil {
		s.logger.Warn("store source unavailable", zap.String("path", path), zap.Error(err))
		return 0, err
	}
	n := s.add(pairs)
	s.logger.Info("store loaded",
		zap.String("path", path),
		zap.Int("entries", n),
		zap.Int("lines", stats.Lines),
		zap.Int("skipped", stats.Malformed))
	return n, nil
}

// IngestReader bulk loads pairs from r.
func (s *QAServiceImpl) IngestReader(r io.Reader) (int, error) {
	pairs, stats, err := textfile.Parse(r)
	n := s.add(pairs)
	s.logger.Debug("pairs ingested", zap.Int("entries", n), zap.Int("skipped", stats.Malformed))
	return n, err
}

func (s *QAServiceImpl) add(pairs []domain.QAPair) int {
	n := 0
	for _, p := range pairs {
		if _, err := s.store.Add(p.Question, p.Response); err != nil {
			s.logger.Warn("store full, remaining lines ignored",
				zap.Int("capacity", s.store.Cap()),
				zap.Int("ignored", len(pairs)-n))
			break
		}
		n++
	}
	return n
}

// Query looks text up without side effects.
func (s *QAServiceImpl) Query(text string) domain.MatchResult {
	res := s.engine.FindBest(text, s.store.Entries())
	s.logger.Debug("query",
		zap.String("text", text),
		zap.Bool("found", res.Found),
		zap.Int("index", res.Index),
		zap.Float64("score", res.Score))
	return res
}

// Learn stores a new pair in memory, then appends it to the journal.
// A question already stored verbatim is rejected with domain.ErrDuplicate.
// A full store rejects the pair before anything is written. A journal failure is
// reported after the in-memory store already holds the pair.
func (s *QAServiceImpl) Learn(question, response string) error {
	if err := textfile.Validate(question, response); err != nil {
		return err
	}
	if lo.ContainsBy(s.store.Entries(), func(e domain.Entry) bool { return e.Question == question }) {
		return errors.Wrapf(domain.ErrDuplicate, "question %q", question)
	}
	if _, err := s.store.Add(question, response); err != nil {
		s.logger.Warn("learn rejected", zap.String("question", question), zap.Error(err))
		return err
	}
	if s.journal != nil {
		if err := s.journal.Append(question, response); err != nil {
			s.logger.Error("learned pair not persisted", zap.String("question", question), zap.Error(err))
			return err
		}
	}
	s.logger.Info("learned", zap.String("question", question), zap.Int("entries", s.store.Len()))
	return nil
}

// Greet answers a self-introduction.
func (s *QAServiceImpl) Greet(text string) (string, bool) {
	if s.greeter == nil {
		return "", false
	}
	return s.greeter.Greet(text)
}

// Resolve runs one turn: greeting, lookup, then on a miss asks corrector for the
// answer and learns it. A nil corrector or an empty correction leaves the question unknown.
func (s *QAServiceImpl) Resolve(ctx context.Context, text string, corrector domain.Corrector) (Reply, error) {
	if greeting, ok := s.Greet(text); ok {
		return Reply{Text: greeting, Source: SourceGreeting, Match: domain.NotFound(0)}, nil
	}
	res := s.Query(text)
	if res.Found {
		return Reply{Text: res.Entry.Response, Source: SourceMatch, Match: res}, nil
	}
	unknown := Reply{Source: SourceUnknown, Match: res}
	if corrector == nil {
		return unknown, nil
	}
	correction, err := corrector.Correct(ctx, text)
	if err != nil {
		return unknown, errors.Wrap(err, "get correction")
	}
	correction = strings.TrimSpace(correction)
	if correction == "" {
		return unknown, nil
	}
	if err := s.Learn(text, correction); err != nil {
		if errors.Is(err, domain.ErrWriteFailure) {
			return Reply{Text: correction, Source: SourceLearned, Match: res}, err
		}
		return unknown, err
	}
	return Reply{Text: correction, Source: SourceLearned, Match: res}, nil
}

// Questions lists stored questions in insertion order.
func (s *QAServiceImpl) Questions() []string {
	return lo.Map(s.store.Entries(), func(e domain.Entry, _ int) string { return e.Question })
}

// Stats reports the store fill level and active metric.
func (s *QAServiceImpl) Stats() Stats {
	return Stats{Entries: s.store.Len(), Capacity: s.store.Cap(), Metric: s.engine.Metric().Name()}
}
