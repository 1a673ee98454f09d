package throttler

import (
	"context"
	"errors"
	"testing"
	"time"

	"pgbot/sources/tracing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeSetter struct {
	keys map[string]time.Duration
	err  error
}

func (f *fakeSetter) SetNX(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestIsAllowed(t *testing.T) {
	setter := &fakeSetter{keys: map[string]time.Duration{}}
	x := &Throttler{client: setter, config: &ThrottlerConfig{Limit: 3 * time.Second}, log: tracing.NewDiscardLogger()}
	ctx := context.Background()

	assert.True(t, x.IsAllowed(ctx, 42))
	assert.False(t, x.IsAllowed(ctx, 42))
	assert.True(t, x.IsAllowed(ctx, 7))
	assert.Equal(t, 3*time.Second, setter.keys["throttle:42"])
}

func TestIsAllowedFailsOpen(t *testing.T) {
	setter := &fakeSetter{err: errors.New("connection refused")}
	x := &Throttler{client: setter, config: &ThrottlerConfig{Limit: time.Second}, log: tracing.NewDiscardLogger()}

	assert.True(t, x.IsAllowed(context.Background(), 1))
}

func TestIsAllowedDisabled(t *testing.T) {
	setter := &fakeSetter{err: errors.New("must not be called")}
	x := &Throttler{client: setter, config: &ThrottlerConfig{}, log: tracing.NewDiscardLogger()}

	assert.True(t, x.IsAllowed(context.Background(), 1))
}
