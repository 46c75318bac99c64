package capability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, found, err := store.Load(ctx, "https://search.example.net")
	require.NoError(t, err)
	assert.False(t, found)

	p := Profile{
		MaxVectorDimensions:     1536,
		SemanticSearchSupported: true,
		CustomAnalyzers:         []string{"keyword_lowercase"},
		APIVersion:              "2024-07-01",
		DetectedAt:              time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, "https://search.example.net", p))

	got, found, err := store.Load(ctx, "https://search.example.net")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, p, got)
}

func TestFileStoreKeysDoNotCollide(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "https://a.example.net", Profile{MaxVectorDimensions: 1}))
	require.NoError(t, store.Save(ctx, "https://b.example.net", Profile{MaxVectorDimensions: 2}))

	a, found, err := store.Load(ctx, "https://a.example.net")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, a.MaxVectorDimensions)
}
