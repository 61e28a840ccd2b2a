package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qabot/internal/domain"
	"qabot/internal/embedding/charcode"
	"qabot/internal/intro"
	"qabot/internal/matcher"
	"qabot/internal/service/mocks"
	"qabot/internal/similarity"
	"qabot/internal/vectorstore/memory"
	"qabot/internal/vectorstore/textfile"
)

type fixture struct {
	svc   *QAServiceImpl
	store *memory.Storage
	path  string
}

func newFixture(t *testing.T, metric string, capacity int, opts ...matcher.Option) fixture {
	t.Helper()
	enc := charcode.New(24)
	m, err := similarity.ByName(metric, enc)
	require.NoError(t, err)
	store := memory.NewStorage(capacity, enc)
	path := filepath.Join(t.TempDir(), "database.txt")
	svc := NewQAService(store, matcher.New(m, opts...), textfile.NewJournal(path), intro.NewDetector(nil, ""), nil)
	return fixture{svc: svc, store: store, path: path}
}

func writeDB(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestQueryExactMetric(t *testing.T) {
	f := newFixture(t, similarity.NameExact, 10)
	n, err := f.svc.IngestReader(strings.NewReader("bonjour|salut\nça va|oui et toi\n"))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	res := f.svc.Query("bonjour")
	require.True(t, res.Found)
	assert.Equal(t, "salut", res.Entry.Response)
	assert.Equal(t, 0, res.Index)
}

func TestQueryEmptyStore(t *testing.T) {
	for _, metric := range []string{similarity.NameCosine, similarity.NameAttention, similarity.NameEditDistance, similarity.NameExact} {
		t.Run(metric, func(t *testing.T) {
			f := newFixture(t, metric, 10)
			res := f.svc.Query("anything")
			assert.False(t, res.Found)
			assert.Equal(t, -1, res.Index)
		})
	}
}

func TestQueryEditDistanceTolerance(t *testing.T) {
	testCases := []struct {
		name      string
		tolerance float64
		found     bool
	}{
		{name: "accepted", tolerance: 5, found: true},
		{name: "rejected", tolerance: 2, found: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, similarity.NameEditDistance, 10, matcher.WithTolerance(tc.tolerance))
			_, err := f.svc.IngestReader(strings.NewReader("chien|wouf"))
			require.NoError(t, err)
			res := f.svc.Query("chat")
			assert.Equal(t, tc.found, res.Found)
			assert.Equal(t, 3.0, res.Score)
		})
	}
}

func TestLearnThenQuery(t *testing.T) {
	for _, metric := range []string{similarity.NameCosine, similarity.NameAttention, similarity.NameEditDistance, similarity.NameExact} {
		t.Run(metric, func(t *testing.T) {
			f := newFixture(t, metric, 10)
			_, err := f.svc.IngestReader(strings.NewReader("bonjour|salut\n"))
			require.NoError(t, err)

			require.NoError(t, f.svc.Learn("quel temps fait-il", "il pleut"))
			res := f.svc.Query("quel temps fait-il")
			require.True(t, res.Found)
			assert.Equal(t, "il pleut", res.Entry.Response)
			assert.Equal(t, 1, res.Index)

			data, err := os.ReadFile(f.path)
			require.NoError(t, err)
			assert.Equal(t, "\nquel temps fait-il|il pleut", string(data))
		})
	}
}

func TestLearnStoreFull(t *testing.T) {
	f := newFixture(t, similarity.NameEditDistance, 3)
	for i := 0; i < 3; i++ {
		require.NoError(t, f.svc.Learn(fmt.Sprintf("question %d", i), "réponse"))
	}
	before, err := os.ReadFile(f.path)
	require.NoError(t, err)

	err = f.svc.Learn("question 3", "réponse")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreFull))
	assert.Equal(t, 3, f.store.Len())

	after, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLearnWriteFailureKeepsMemory(t *testing.T) {
	enc := charcode.New(8)
	store := memory.NewStorage(5, enc)
	journal := textfile.NewJournal(filepath.Join(t.TempDir(), "missing", "db.txt"))
	svc := NewQAService(store, matcher.New(similarity.NewExact()), journal, nil, nil)

	err := svc.Learn("q", "r")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWriteFailure))
	assert.Equal(t, 1, store.Len())
	assert.True(t, svc.Query("q").Found)
}

func TestLearnRejectsUnrepresentablePairs(t *testing.T) {
	f := newFixture(t, similarity.NameExact, 5)
	for _, pair := range [][2]string{{"a|b", "c"}, {"a", "b\nc"}, {"a\n", "b"}, {"", "x"}, {"q", ""}, {"  ", "x"}, {"q", "\t"}} {
		err := f.svc.Learn(pair[0], pair[1])
		assert.True(t, errors.Is(err, domain.ErrInvalidEntry))
	}
	assert.Zero(t, f.store.Len())
	assert.NoFileExists(t, f.path)
}

func TestLearnRejectsKnownQuestion(t *testing.T) {
	f := newFixture(t, similarity.NameEditDistance, 5)
	_, err := f.svc.IngestReader(strings.NewReader("bonjour|salut"))
	require.NoError(t, err)

	err = f.svc.Learn("bonjour", "coucou")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Equal(t, 1, f.store.Len())
	assert.NoFileExists(t, f.path)
	assert.Equal(t, "salut", f.svc.Query("bonjour").Entry.Response)

	require.NoError(t, f.svc.Learn("Bonjour", "coucou"))
	assert.Equal(t, "coucou", f.svc.Query("Bonjour").Entry.Response)
}

func TestIngest(t *testing.T) {
	f := newFixture(t, similarity.NameEditDistance, 10)
	writeDB(t, f.path, "a|b|c\nmalformed\r\nbonjour|salut\r\n")

	n, err := f.svc.Ingest(f.path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries := f.store.Entries()
	assert.Equal(t, "a", entries[0].Question)
	assert.Equal(t, "b|c", entries[0].Response)
	assert.Equal(t, "salut", entries[1].Response)

	data, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Equal(t, "a|b|c\nmalformed\r\nbonjour|salut\r\n", string(data))
}

func TestIngestMissingSource(t *testing.T) {
	f := newFixture(t, similarity.NameEditDistance, 10)
	n, err := f.svc.Ingest(f.path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
	assert.Zero(t, n)
	assert.Zero(t, f.store.Len())

	require.NoError(t, f.svc.Learn("bonjour", "salut"))
	assert.True(t, f.svc.Query("bonjour").Found)
}

func TestIngestStopsAtCapacity(t *testing.T) {
	f := newFixture(t, similarity.NameEditDistance, 2)
	n, err := f.svc.IngestReader(strings.NewReader("q1|r1\nq2|r2\nq3|r3\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"q1", "q2"}, f.svc.Questions())
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("greeting", func(t *testing.T) {
		f := newFixture(t, similarity.NameEditDistance, 5)
		reply, err := f.svc.Resolve(ctx, "je suis Paul", nil)
		require.NoError(t, err)
		assert.Equal(t, SourceGreeting, reply.Source)
		assert.Equal(t, "Enchanté Paul !", reply.Text)
	})

	t.Run("match", func(t *testing.T) {
		f := newFixture(t, similarity.NameEditDistance, 5)
		_, _ = f.svc.IngestReader(strings.NewReader("bonjour|salut"))
		ctrl := gomock.NewController(t)
		corrector := mocks.NewMockCorrector(ctrl)

		reply, err := f.svc.Resolve(ctx, "bonjours", corrector)
		require.NoError(t, err)
		assert.Equal(t, SourceMatch, reply.Source)
		assert.Equal(t, "salut", reply.Text)
	})

	t.Run("unknown without corrector", func(t *testing.T) {
		f := newFixture(t, similarity.NameEditDistance, 5)
		reply, err := f.svc.Resolve(ctx, "bonjour", nil)
		require.NoError(t, err)
		assert.Equal(t, SourceUnknown, reply.Source)
		assert.False(t, reply.Match.Found)
	})

	t.Run("learns correction", func(t *testing.T) {
		f := newFixture(t, similarity.NameEditDistance, 5)
		ctrl := gomock.NewController(t)
		corrector := mocks.NewMockCorrector(ctrl)
		corrector.EXPECT().Correct(gomock.Any(), "comment tu t'appelles").Return("  qabot  ", nil)

		reply, err := f.svc.Resolve(ctx, "comment tu t'appelles", corrector)
		require.NoError(t, err)
		assert.Equal(t, SourceLearned, reply.Source)
		assert.Equal(t, "qabot", reply.Text)

		again, err := f.svc.Resolve(ctx, "comment tu t'appelles", corrector)
		require.NoError(t, err)
		assert.Equal(t, SourceMatch, again.Source)
		assert.Equal(t, "qabot", again.Text)

		pairs, _, err := textfile.Load(f.path)
		require.NoError(t, err)
		assert.Equal(t, []domain.QAPair{{Question: "comment tu t'appelles", Response: "qabot"}}, pairs)
	})

	t.Run("empty correction skips", func(t *testing.T) {
		f := newFixture(t, similarity.NameEditDistance, 5)
		ctrl := gomock.NewController(t)
		corrector := mocks.NewMockCorrector(ctrl)
		corrector.EXPECT().Correct(gomock.Any(), gomock.Any()).Return("", nil)

		reply, err := f.svc.Resolve(ctx, "bonjour", corrector)
		require.NoError(t, err)
		assert.Equal(t, SourceUnknown, reply.Source)
		assert.Zero(t, f.store.Len())
	})

	t.Run("corrector error", func(t *testing.T) {
		f := newFixture(t, similarity.NameEditDistance, 5)
		ctrl := gomock.NewController(t)
		corrector := mocks.NewMockCorrector(ctrl)
		corrector.EXPECT().Correct(gomock.Any(), gomock.Any()).Return("", errors.New("stdin closed"))

		reply, err := f.svc.Resolve(ctx, "bonjour", corrector)
		require.Error(t, err)
		assert.Equal(t, SourceUnknown, reply.Source)
		assert.Zero(t, f.store.Len())
	})

	t.Run("store full", func(t *testing.T) {
		f := newFixture(t, similarity.NameEditDistance, 1)
		require.NoError(t, f.svc.Learn("first", "one"))
		ctrl := gomock.NewController(t)
		corrector := mocks.NewMockCorrector(ctrl)
		corrector.EXPECT().Correct(gomock.Any(), "a completely different question").Return("two", nil)

		reply, err := f.svc.Resolve(ctx, "a completely different question", corrector)
		assert.True(t, errors.Is(err, domain.ErrStoreFull))
		assert.Equal(t, SourceUnknown, reply.Source)
		assert.Equal(t, 1, f.store.Len())
	})
}

func TestQueryEncodesOncePerLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	enc := mocks.NewMockEncoder(ctrl)
	enc.EXPECT().Encode("bonjour").Return(domain.Vector{1, 0}).Times(1)
	enc.EXPECT().Encode("au revoir").Return(domain.Vector{0, 1}).Times(1)
	enc.EXPECT().Encode("salut").Return(domain.Vector{1, 0.1}).Times(1)

	store := memory.NewStorage(5, enc)
	svc := NewQAService(store, matcher.New(similarity.NewCosine(enc)), nil, nil, nil)
	require.NoError(t, svc.Learn("bonjour", "salut"))
	require.NoError(t, svc.Learn("au revoir", "à bientôt"))

	res := svc.Query("salut")
	require.True(t, res.Found)
	assert.Equal(t, 0, res.Index)
}

func TestStats(t *testing.T) {
	f := newFixture(t, similarity.NameCosine, 7)
	require.NoError(t, f.svc.Learn("q", "r"))
	assert.Equal(t, Stats{Entries: 1, Capacity: 7, Metric: "cosine"}, f.svc.Stats())
	assert.Equal(t, "learned", SourceLearned.String())
}
