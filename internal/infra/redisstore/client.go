package redisstore

import (
	"context"
	"fmt"
	"time"

	"taskmill/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Client struct {
	Cfg config.Redis
	Rdb *redis.Client
}

func New(cfg config.Redis) *Client {
	log.Info().Msgf("connecting to redis at %s", cfg.Addr)
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Client{Cfg: cfg, Rdb: c}
}

func (c *Client) Connect(ctx context.Context) error {
	if err := c.Rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	log.Ctx(ctx).Info().Msg("connected to redis")
	return nil
}

func taskKey(tenantID, id string) string       { return fmt.Sprintf("task:%s:%s", tenantID, id) }
func automationKey(tenantID, id string) string { return fmt.Sprintf("automation:%s:%s", tenantID, id) }
func automationIdxKey(tenantID string) string  { return fmt.Sprintf("automation:ids:%s", tenantID) }
func automationDueKey(tenantID string) string  { return fmt.Sprintf("automation:due:%s", tenantID) }

func msScore(t time.Time) float64 { return float64(t.UnixMilli()) }
