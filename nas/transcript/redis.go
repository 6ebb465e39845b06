package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSink pushes records onto a redis list for an external consumer.
type RedisSink struct {
	rdb *redis.Client
	key string
}

func NewRedisSink(addr, key string) *RedisSink {
	return &RedisSink{
		rdb: redis.NewClient(&redis.Options{
			Addr:        addr,
			DialTimeout: 2 * time.Second,
			MaxRetries:  -1,
		}),
		key: key,
	}
}

func (s *RedisSink) String() string {
	return fmt.Sprintf("transcript-redis (%s)", s.key)
}

func (s *RedisSink) Append(ctx context.Context, rec Record) error {
	wire, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, s.key, wire).Err()
}

func (s *RedisSink) Records(ctx context.Context) ([]Record, error) {
	vals, err := s.rdb.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	recs := make([]Record, 0, len(vals))
	for _, v := range vals {
		var rec Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("corrupt transcript record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *RedisSink) Close() error {
	return s.rdb.Close()
}
