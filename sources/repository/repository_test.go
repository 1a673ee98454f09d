package repository

import (
	"context"
	"testing"

	"pgbot/sources/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklist(t *testing.T) {
	ctx := context.Background()
	repo := &BlacklistRepository{store: newMemoryStore(), log: tracing.NewDiscardLogger()}

	added, err := repo.Add(ctx, "Say")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Add(ctx, "say")
	require.NoError(t, err)
	assert.False(t, added, "second add of the same command")

	_, err = repo.Add(ctx, "blacklist   ADD")
	require.NoError(t, err)

	found, err := repo.IsBlacklisted(ctx, "SAY")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.IsBlacklisted(ctx, "ping")
	require.NoError(t, err)
	assert.False(t, found)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"blacklist add", "say"}, list)

	removed, err := repo.Remove(ctx, "say")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, "say")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestBlacklistStoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.fail = true
	repo := &BlacklistRepository{store: store, log: tracing.NewDiscardLogger()}

	_, err := repo.IsBlacklisted(context.Background(), "say")
	assert.ErrorIs(t, err, errStoreDown)

	_, err = repo.Add(context.Background(), "say")
	assert.ErrorIs(t, err, errStoreDown)
}

func TestEmotionsClamp(t *testing.T) {
	ctx := context.Background()
	repo := &EmotionsRepository{store: newMemoryStore(), log: tracing.NewDiscardLogger()}

	value, err := repo.Get(ctx, EmotionConfused)
	require.NoError(t, err)
	assert.Zero(t, value)

	value, err = repo.Update(ctx, EmotionConfused, 60)
	require.NoError(t, err)
	assert.EqualValues(t, 60, value)

	value, err = repo.Update(ctx, EmotionConfused, 60)
	require.NoError(t, err)
	assert.EqualValues(t, EmotionCeiling, value)

	value, err = repo.Update(ctx, EmotionConfused, -1)
	require.NoError(t, err)
	assert.EqualValues(t, 99, value, "stored value was clamped, not left at 120")

	value, err = repo.Update(ctx, EmotionConfused, -500)
	require.NoError(t, err)
	assert.EqualValues(t, EmotionFloor, value)

	value, err = repo.Get(ctx, EmotionConfused)
	require.NoError(t, err)
	assert.EqualValues(t, EmotionFloor, value)
}

func TestEmotionsAll(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	repo := &EmotionsRepository{store: store, log: tracing.NewDiscardLogger()}

	_, err := repo.Update(ctx, "happy", 3)
	require.NoError(t, err)
	_, err = repo.Update(ctx, EmotionConfused, -2)
	require.NoError(t, err)
	store.hash(emotionsKey)["broken"] = "nan"

	emotions, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Emotion{{Name: "confused", Value: -2}, {Name: "happy", Value: 3}}, emotions)
}
