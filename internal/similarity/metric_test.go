package similarity

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qabot/internal/domain"
	"qabot/internal/embedding/charcode"
)

func TestByName(t *testing.T) {
	enc := charcode.New(8)
	for _, tc := range []struct {
		name string
		kind Kind
	}{
		{NameCosine, KindSimilarity},
		{NameAttention, KindSimilarity},
		{NameEditDistance, KindDistance},
		{NameExact, KindDistance},
	} {
		m, err := ByName(tc.name, enc)
		require.NoError(t, err)
		assert.Equal(t, tc.name, m.Name())
		assert.Equal(t, tc.kind, m.Kind())
	}

	_, err := ByName("jaccard", enc)
	assert.True(t, errors.Is(err, domain.ErrUnknownMetric))
}

func TestMetricScores(t *testing.T) {
	enc := charcode.New(8)
	entry := domain.Entry{Question: "chien", Response: "wouf", Encoded: enc.Encode("chien")}

	score := NewEditDistance().Prepare("chat", nil)(entry)
	assert.Equal(t, 3.0, score)

	exact := NewExact().Prepare("chien", nil)
	assert.Equal(t, 0.0, exact(entry))
	assert.True(t, math.IsInf(NewExact().Prepare("chiens", nil)(entry), 1))

	cos := NewCosine(enc).Prepare("chien", nil)
	assert.InDelta(t, 1.0, cos(entry), 1e-12)

	att := NewAttention(enc).Prepare("chien", []domain.Entry{entry})
	assert.InDelta(t, 1.0, att(entry), 1e-12)
}
