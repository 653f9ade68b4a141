package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/baharkarakas/projectify-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const reportsKeyPrefix = "reports:"

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

type RedisReports struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReports(client *redis.Client, ttl time.Duration) *RedisReports {
	return &RedisReports{client: client, ttl: ttl}
}

func reportsKey(userID string, gen int64) string {
	return reportsKeyPrefix + userID + ":" + strconv.FormatInt(gen, 10)
}

func generationKey(userID string) string { return reportsKeyPrefix + userID + ":gen" }

func (c *RedisReports) Generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisReports) Get(ctx context.Context, userID string, gen int64) ([]models.Report, bool, error) {
	data, err := c.client.Get(ctx, reportsKey(userID, gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var reports []models.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, false, err
	}
	return reports, true, nil
}

// Set stores reports under gen. A list written under a generation that has
// since been invalidated lands on a key nobody reads and expires with ttl.
func (c *RedisReports) Set(ctx context.Context, userID string, gen int64, reports []models.Report) error {
	data, err := json.Marshal(reports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, reportsKey(userID, gen), data, c.ttl).Err()
}

func (c *RedisReports) Invalidate(ctx context.Context, userID string) error {
	return c.client.Incr(ctx, generationKey(userID)).Err()
}
