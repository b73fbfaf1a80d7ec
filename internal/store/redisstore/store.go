package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyLivePrice = "gold:live:24k"
	KeySubmit    = "submit:%s:%s" // route, client
)

type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// GetLivePrice reports ok=false on a cache miss.
func (s *Store) GetLivePrice(ctx context.Context) (float64, bool, error) {
	v, err := s.rdb.Get(ctx, KeyLivePrice).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	price, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, fmt.Errorf("bad cached price %q: %w", v, err)
	}
	return price, true, nil
}

func (s *Store) SetLivePrice(ctx context.Context, price float64, ttl time.Duration) error {
	return s.rdb.Set(ctx, KeyLivePrice, strconv.FormatFloat(price, 'f', -1, 64), ttl).Err()
}

// Allow counts one submission by client on route inside a fixed window.
// It answers true whenever redis is unavailable, alongside the error.
func (s *Store) Allow(ctx context.Context, route, client string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	key := fmt.Sprintf(KeySubmit, route, client)

	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return true, err
		}
	}
	return n <= int64(limit), nil
}
