package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var errStoreDown = errors.New("store down")

type memoryStore struct {
	sets   map[string]map[string]struct{}
	hashes map[string]map[string]string
	fail   bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sets:   map[string]map[string]struct{}{},
		hashes: map[string]map[string]string{},
	}
}

func (m *memoryStore) set(key string) map[string]struct{} {
	if m.sets[key] == nil {
		m.sets[key] = map[string]struct{}{}
	}
	return m.sets[key]
}

func (m *memoryStore) hash(key string) map[string]string {
	if m.hashes[key] == nil {
		m.hashes[key] = map[string]string{}
	}
	return m.hashes[key]
}

func (m *memoryStore) SAdd(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	if m.fail {
		return redis.NewIntResult(0, errStoreDown)
	}
	var added int64
	for _, member := range members {
		name := fmt.Sprint(member)
		if _, ok := m.set(key)[name]; !ok {
			m.set(key)[name] = struct{}{}
			added++
		}
	}
	return redis.NewIntResult(added, nil)
}

func (m *memoryStore) SRem(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	if m.fail {
		return redis.NewIntResult(0, errStoreDown)
	}
	var removed int64
	for _, member := range members {
		name := fmt.Sprint(member)
		if _, ok := m.set(key)[name]; ok {
			delete(m.set(key), name)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func (m *memoryStore) SIsMember(_ context.Context, key string, member interface{}) *redis.BoolCmd {
	if m.fail {
		return redis.NewBoolResult(false, errStoreDown)
	}
	_, ok := m.set(key)[fmt.Sprint(member)]
	return redis.NewBoolResult(ok, nil)
}

func (m *memoryStore) SMembers(_ context.Context, key string) *redis.StringSliceCmd {
	if m.fail {
		return redis.NewStringSliceResult(nil, errStoreDown)
	}
	members := make([]string, 0, len(m.set(key)))
	for name := range m.set(key) {
		members = append(members, name)
	}
	return redis.NewStringSliceResult(members, nil)
}

func (m *memoryStore) HIncrBy(_ context.Context, key, field string, incr int64) *redis.IntCmd {
	if m.fail {
		return redis.NewIntResult(0, errStoreDown)
	}
	current, _ := strconv.ParseInt(m.hash(key)[field], 10, 64)
	current += incr
	m.hash(key)[field] = strconv.FormatInt(current, 10)
	return redis.NewIntResult(current, nil)
}

func (m *memoryStore) HSet(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	if m.fail {
		return redis.NewIntResult(0, errStoreDown)
	}
	for i := 0; i+1 < len(values); i += 2 {
		m.hash(key)[fmt.Sprint(values[i])] = fmt.Sprint(values[i+1])
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (m *memoryStore) HGet(_ context.Context, key, field string) *redis.StringCmd {
	if m.fail {
		return redis.NewStringResult("", errStoreDown)
	}
	value, ok := m.hash(key)[field]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (m *memoryStore) HGetAll(_ context.Context, key string) *redis.MapStringStringCmd {
	if m.fail {
		return redis.NewMapStringStringResult(nil, errStoreDown)
	}
	out := make(map[string]string, len(m.hash(key)))
	for k, v := range m.hash(key) {
		out[k] = v
	}
	return redis.NewMapStringStringResult(out, nil)
}
