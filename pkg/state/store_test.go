package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	st, err := s.Get(context.Background(), "never-seen")
	require.NoError(t, err, "missing key is not an error")
	assert.Nil(t, st)
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	orig := &domain.SourceState{
		SourceID:     "openai-blog",
		Fingerprint:  "abc123",
		ETag:         `"v1"`,
		LastModified: "Wed, 21 Oct 2015 07:28:00 GMT",
		LastSeen:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		LastItemKey:  "https://example.com/post-1",
	}
	require.NoError(t, s.Put(ctx, orig))

	got, err := s.Get(ctx, "openai-blog")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *orig, *got)

	// overwrite wins
	orig.Fingerprint = "def456"
	require.NoError(t, s.Put(ctx, orig))
	got, err = s.Get(ctx, "openai-blog")
	require.NoError(t, err)
	assert.Equal(t, "def456", got.Fingerprint)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.SourceState{SourceID: "x", Fingerprint: "aaa"}))

	got, err := s.Get(ctx, "x")
	require.NoError(t, err)
	got.Fingerprint = "mutated"

	again, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "aaa", again.Fingerprint, "caller mutation must not leak into the store")
}

func TestMemoryStore_BatchGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.SourceState{SourceID: "a", Fingerprint: "fa"}))
	require.NoError(t, s.Put(ctx, &domain.SourceState{SourceID: "b", Fingerprint: "fb"}))

	res, err := s.BatchGet(ctx, []string{"a", "b", "missing"})
	require.NoError(t, err)
	require.Len(t, res, 2, "missing keys are omitted, not errors")
	assert.Equal(t, "fa", res["a"].Fingerprint)
	assert.Equal(t, "fb", res["b"].Fingerprint)
	_, ok := res["missing"]
	assert.False(t, ok)
}
