package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"pgbot/sources/platform"
	"pgbot/sources/tracing"

	"github.com/redis/go-redis/v9"
)

const blacklistKey = "blacklist:commands"

type setStore interface {
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SIsMember(ctx context.Context, key string, member interface{}) *redis.BoolCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

// BlacklistRepository keeps the set of command paths that may not be invoked.
// Paths are stored lowercased, e.g. "say" or "blacklist add".
type BlacklistRepository struct {
	store setStore
	log   *tracing.Logger
}

func NewBlacklistRepository(client *redis.Client, log *tracing.Logger) *BlacklistRepository {
	return &BlacklistRepository{store: client, log: log}
}

func normalizeCommand(command string) string {
	return strings.ToLower(strings.Join(strings.Fields(command), " "))
}

func (x *BlacklistRepository) IsBlacklisted(ctx context.Context, command string) (bool, error) {
	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	found, err := x.store.SIsMember(ctx, blacklistKey, normalizeCommand(command)).Result()
	if err != nil {
		return false, fmt.Errorf("query blacklist: %w", err)
	}

	return found, nil
}

// Add reports whether the command was not blacklisted before.
func (x *BlacklistRepository) Add(ctx context.Context, command string) (bool, error) {
	defer tracing.ProfilePoint(x.log, "Blacklist add completed", "repository.blacklist.add", "command", command)()

	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	added, err := x.store.SAdd(ctx, blacklistKey, normalizeCommand(command)).Result()
	if err != nil {
		x.log.E("Failed to add command to blacklist", tracing.InnerError, err)
		return false, fmt.Errorf("add %q to blacklist: %w", command, err)
	}

	return added > 0, nil
}

// Remove reports whether the command was blacklisted before.
func (x *BlacklistRepository) Remove(ctx context.Context, command string) (bool, error) {
	defer tracing.ProfilePoint(x.log, "Blacklist remove completed", "repository.blacklist.remove", "command", command)()

	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	removed, err := x.store.SRem(ctx, blacklistKey, normalizeCommand(command)).Result()
	if err != nil {
		x.log.E("Failed to remove command from blacklist", tracing.InnerError, err)
		return false, fmt.Errorf("remove %q from blacklist: %w", command, err)
	}

	return removed > 0, nil
}

func (x *BlacklistRepository) List(ctx context.Context) ([]string, error) {
	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	members, err := x.store.SMembers(ctx, blacklistKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list blacklist: %w", err)
	}

	slices.Sort(members)
	return members, nil
}
