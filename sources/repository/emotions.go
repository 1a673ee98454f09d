package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"pgbot/sources/platform"
	"pgbot/sources/tracing"

	"github.com/redis/go-redis/v9"
)

const (
	emotionsKey = "emotions"

	EmotionConfused = "confused"

	EmotionFloor   = -100
	EmotionCeiling = 100
)

type hashStore interface {
	HIncrBy(ctx context.Context, key, field string, incr int64) *redis.IntCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

type Emotion struct {
	Name  string
	Value int64
}

// EmotionsRepository stores the bot's mood counters, each kept within [EmotionFloor, EmotionCeiling].
type EmotionsRepository struct {
	store hashStore
	log   *tracing.Logger
}

func NewEmotionsRepository(client *redis.Client, log *tracing.Logger) *EmotionsRepository {
	return &EmotionsRepository{store: client, log: log}
}

func clampEmotion(value int64) int64 {
	return min(max(value, EmotionFloor), EmotionCeiling)
}

// Update shifts the named counter by delta and returns the stored value.
func (x *EmotionsRepository) Update(ctx context.Context, name string, delta int64) (int64, error) {
	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	value, err := x.store.HIncrBy(ctx, emotionsKey, name, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("update emotion %q: %w", name, err)
	}

	clamped := clampEmotion(value)
	if clamped != value {
		if err := x.store.HSet(ctx, emotionsKey, name, clamped).Err(); err != nil {
			return 0, fmt.Errorf("clamp emotion %q: %w", name, err)
		}
	}

	x.log.D("Emotion updated", tracing.Emotion, name, "delta", delta, "value", clamped)
	return clamped, nil
}

func (x *EmotionsRepository) Get(ctx context.Context, name string) (int64, error) {
	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	raw, err := x.store.HGet(ctx, emotionsKey, name).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get emotion %q: %w", name, err)
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode emotion %q: %w", name, err)
	}

	return clampEmotion(value), nil
}

// All returns every stored counter ordered by name. Counters that never moved are absent.
func (x *EmotionsRepository) All(ctx context.Context) ([]Emotion, error) {
	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	raw, err := x.store.HGetAll(ctx, emotionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list emotions: %w", err)
	}

	emotions := make([]Emotion, 0, len(raw))
	for name, v := range raw {
		value, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			x.log.W("Skipping malformed emotion", tracing.Emotion, name, tracing.InnerError, err)
			continue
		}
		emotions = append(emotions, Emotion{Name: name, Value: clampEmotion(value)})
	}

	slices.SortFunc(emotions, func(a, b Emotion) int {
		return strings.Compare(a.Name, b.Name)
	})

	return emotions, nil
}
