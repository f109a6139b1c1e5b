package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"academy-backend/internal/domains/cart/model"
)

// RedisStore layout per session:
//
//	cart:<sid>:items  hash  course id -> JSON snapshot
//	cart:<sid>:order  list  course ids in insertion order
//
// Both keys expire together after ttl of inactivity.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = model.SessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func itemsKey(sessionID string) string { return "cart:" + sessionID + ":items" }
func orderKey(sessionID string) string { return "cart:" + sessionID + ":order" }

// addScript inserts the snapshot and its position atomically.
//
//	KEYS[1] items hash, KEYS[2] order list
//	ARGV[1] course id, ARGV[2] JSON snapshot, ARGV[3] ttl in seconds
//
// Returns {1, snapshot} when inserted, {0, existing snapshot} otherwise.
var addScript = redis.NewScript(addScriptSource)

const addScriptSource = `
local added = redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2])
if added == 1 then
	redis.call('RPUSH', KEYS[2], ARGV[1])
end
redis.call('EXPIRE', KEYS[1], ARGV[3])
redis.call('EXPIRE', KEYS[2], ARGV[3])
return {added, redis.call('HGET', KEYS[1], ARGV[1])}
`

func (s *RedisStore) Add(ctx context.Context, sessionID string, entry model.CartEntry) (model.CartEntry, bool, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return model.CartEntry{}, false, fmt.Errorf("encode cart entry: %w", err)
	}
	field := strconv.FormatInt(entry.CourseID, 10)

	res, err := addScript.Run(ctx, s.client,
		[]string{itemsKey(sessionID), orderKey(sessionID)},
		field, data, ttlSeconds(s.ttl),
	).Slice()
	if err != nil {
		return model.CartEntry{}, false, fmt.Errorf("redis cart add: %w", err)
	}

	return decodeAddReply(res)
}

func decodeAddReply(res []interface{}) (model.CartEntry, bool, error) {
	if len(res) != 2 {
		return model.CartEntry{}, false, fmt.Errorf("redis cart add: unexpected reply of %d values", len(res))
	}
	flag, _ := res[0].(int64)
	raw, ok := res[1].(string)
	if !ok {
		return model.CartEntry{}, false, fmt.Errorf("redis cart add: missing snapshot")
	}

	var stored model.CartEntry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return model.CartEntry{}, false, fmt.Errorf("decode cart entry: %w", err)
	}
	return stored, flag == 1, nil
}

// ttlSeconds rounds up so a sub-second ttl still expires instead of persisting.
func ttlSeconds(ttl time.Duration) int64 {
	secs := int64((ttl + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func (s *RedisStore) Remove(ctx context.Context, sessionID string, courseID int64) error {
	field := strconv.FormatInt(courseID, 10)

	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, itemsKey(sessionID), field)
	pipe.LRem(ctx, orderKey(sessionID), 0, field)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis cart remove: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, itemsKey(sessionID), orderKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis cart clear: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, sessionID string) ([]model.CartEntry, error) {
	ids, err := s.client.LRange(ctx, orderKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}
	if len(ids) == 0 {
		return []model.CartEntry{}, nil
	}

	values, err := s.client.HMGet(ctx, itemsKey(sessionID), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hmget: %w", err)
	}

	entries := make([]model.CartEntry, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// order list outlived its hash field
			continue
		}
		var entry model.CartEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Warn().Err(err).Str("session", sessionID).Str("course_id", ids[i]).Msg("Dropping unreadable cart entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
