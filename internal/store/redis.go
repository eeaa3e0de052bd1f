package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// Redis stores each document as a JSON value under "collection:key".
type Redis struct {
	rdb *redis.Client
}

func NewRedis(cfg *config.Config) *Redis {
	return &Redis{rdb: redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})}
}

func redisKey(collection, key string) string {
	return collection + ":" + key
}

func (s *Redis) Get(ctx context.Context, collection, key string, out any) error {
	data, err := s.rdb.Get(ctx, redisKey(collection, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	return json.Unmarshal(data, out)
}

func (s *Redis) Put(ctx context.Context, collection, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, key, err)
	}
	if err := s.rdb.Set(ctx, redisKey(collection, key), data, 0).Err(); err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, key, err)
	}
	return nil
}

// maxUpdateRetries bounds optimistic-lock retries when the watched key is
// written between the read and the merge.
const maxUpdateRetries = 5

// Update merges the fields into the stored document inside a WATCH
// transaction, so two concurrent updates to different fields of the same
// record cannot lose each other's write.
func (s *Redis) Update(ctx context.Context, collection, key string, fields Fields) error {
	k := redisKey(collection, key)

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, k).Bytes()
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}

			merged, err := mergeFields(data, fields)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, k, merged, 0)
				return nil
			})
			return err
		}, k)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", collection, key, err)
		}
		return nil
	}
	return fmt.Errorf("update %s/%s: too many concurrent writes", collection, key)
}

// mergeFields applies a partial update to a stored JSON document.
func mergeFields(data []byte, fields Fields) ([]byte, error) {
	var current map[string]any
	if err := json.Unmarshal(data, &current); err != nil {
		return nil, err
	}
	for name, value := range fields {
		current[name] = value
	}
	return json.Marshal(current)
}

func (s *Redis) Close() error {
	return s.rdb.Close()
}
