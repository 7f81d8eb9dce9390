package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tip-advisor/domain"
)

const sessionKeyPrefix = "tip:session:"

type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// storedSession is the JSON value kept under the session key. The loading
// flag lives in its own key so it can be claimed with SETNX.
type storedSession struct {
	Suggestion string    `json:"suggestion"`
	Failed     bool      `json:"failed"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewRedisSessionRepository(addr string, ttl time.Duration) *RedisSessionRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisSessionRepository{
		client: rdb,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func loadingKey(id string) string {
	return sessionKeyPrefix + id + ":loading"
}

func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisSessionRepository) Close() error {
	return r.client.Close()
}

func (r *RedisSessionRepository) Create(ctx context.Context, id string) error {
	return r.save(ctx, r.client, id, storedSession{UpdatedAt: time.Now().UTC()})
}

// Get reads the value and the loading flag in one MULTI so a concurrent
// Complete is seen either entirely or not at all.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (domain.SessionState, error) {
	var getCmd *redis.StringCmd
	var loadingCmd *redis.IntCmd

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		getCmd = pipe.Get(ctx, sessionKey(id))
		loadingCmd = pipe.Exists(ctx, loadingKey(id))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.SessionState{}, err
	}

	raw, err := getCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SessionState{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.SessionState{}, err
	}

	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return domain.SessionState{}, fmt.Errorf("decode session %s: %w", id, err)
	}

	loading, err := loadingCmd.Result()
	if err != nil {
		return domain.SessionState{}, err
	}

	return domain.SessionState{
		Loading:    loading > 0,
		Suggestion: stored.Suggestion,
		Failed:     stored.Failed,
		UpdatedAt:  stored.UpdatedAt,
	}, nil
}

func (r *RedisSessionRepository) TryBeginLoading(ctx context.Context, id string) (bool, error) {
	exists, err := r.client.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, err
	}
	if exists == 0 {
		return false, ErrSessionNotFound
	}
	return r.client.SetNX(ctx, loadingKey(id), 1, r.ttl).Result()
}

func (r *RedisSessionRepository) Complete(
	ctx context.Context,
	id string,
	outcome domain.SuggestionOutcome,
) error {
	stored := storedSession{
		Suggestion: outcome.Display(),
		Failed:     outcome.Failed(),
		UpdatedAt:  time.Now().UTC(),
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := r.save(ctx, pipe, id, stored); err != nil {
			return err
		}
		return pipe.Del(ctx, loadingKey(id)).Err()
	})
	return err
}

func (r *RedisSessionRepository) save(ctx context.Context, cmd redis.Cmdable, id string, stored storedSession) error {
	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return cmd.Set(ctx, sessionKey(id), raw, r.ttl).Err()
}
