package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ContentAgent/internal/config"
	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

// RedisStore is an indexed alternative to CSVStore: membership is a set
// lookup and the log is a list of JSON records.
type RedisStore struct {
	client *redis.Client
	setKey string
	logKey string
	now    func() time.Time
}

var (
	_ ports.SeenStore = (*RedisStore)(nil)
	_ ports.SeenLog   = (*RedisStore)(nil)
)

// NewRedisStore connects and verifies the server with PING.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	key := cfg.Key
	if key == "" {
		key = "contentagent:seen"
	}
	return &RedisStore{
		client: client,
		setKey: key + ":links",
		logKey: key + ":log",
		now:    time.Now,
	}, nil
}

// Close closes the underlying Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// HasBeenSeen checks set membership of link.
func (r *RedisStore) HasBeenSeen(ctx context.Context, link string) (bool, error) {
	seen, err := r.client.SIsMember(ctx, r.setKey, link).Result()
	if err != nil {
		return false, fmt.Errorf("check seen set: %w", err)
	}
	return seen, nil
}

// MarkAsSeen adds link to the set and appends the record to the log in one
// transaction.
func (r *RedisStore) MarkAsSeen(ctx context.Context, link, title string) error {
	payload, err := json.Marshal(domain.SeenRecord{
		Timestamp: r.now().Truncate(time.Second),
		Title:     title,
		Link:      link,
	})
	if err != nil {
		return fmt.Errorf("marshal seen record: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, r.setKey, link)
		pipe.RPush(ctx, r.logKey, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append seen record: %w", err)
	}
	return nil
}

// Records returns the log in append order.
func (r *RedisStore) Records(ctx context.Context) ([]domain.SeenRecord, error) {
	raw, err := r.client.LRange(ctx, r.logKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read seen log: %w", err)
	}

	records := make([]domain.SeenRecord, 0, len(raw))
	for _, item := range raw {
		var record domain.SeenRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
