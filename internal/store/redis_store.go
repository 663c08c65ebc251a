package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Guizzs26/ballot_register/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	talliesKey = "ballot:tallies"
	leaderKey  = "ballot:leader"
	totalKey   = "ballot:total"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	c := redis.NewClient(opts)

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &RedisStore{client: c}, nil
}

// PublishStandings replaces the mirrored snapshot in a single MULTI/EXEC so
// readers never see tallies from one snapshot next to the leader of another.
func (rs *RedisStore) PublishStandings(ctx context.Context, s model.Standings) error {
	fields := make(map[string]any, len(s.Tallies))
	for _, t := range s.Tallies {
		fields[t.Candidate] = t.Votes
	}

	pipe := rs.client.TxPipeline()
	pipe.Del(ctx, talliesKey)
	if len(fields) > 0 {
		pipe.HSet(ctx, talliesKey, fields)
	}
	pipe.Set(ctx, leaderKey, s.Leader, 0)
	pipe.Set(ctx, totalKey, s.TotalVotes, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error executing redis pipeline: %w", err)
	}
	return nil
}

func (rs *RedisStore) GetTallies(ctx context.Context) (map[string]uint64, error) {
	rstr, err := rs.client.HGetAll(ctx, talliesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting tallies from redis: %w", err)
	}

	result := make(map[string]uint64, len(rstr))
	for candidate, countStr := range rstr {
		count, err := strconv.ParseUint(countStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("error converting count for %q: %w", candidate, err)
		}
		result[candidate] = count
	}

	return result, nil
}

// GetLeader returns "" when nothing has been published yet.
func (rs *RedisStore) GetLeader(ctx context.Context) (string, error) {
	leader, err := rs.client.Get(ctx, leaderKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error getting leader from redis: %w", err)
	}
	return leader, nil
}

func (rs *RedisStore) Close() error {
	if err := rs.client.Close(); err != nil {
		return fmt.Errorf("error closing redis client: %w", err)
	}
	return nil
}
