package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"taskmill/internal/domain"
	"taskmill/internal/ports"

	"github.com/redis/go-redis/v9"
)

var _ ports.AutomationStore = (*AutomationStore)(nil)

// AutomationStore persists automations as one hash per record, with a
// per-tenant id set and a due-index ZSET scored by nextRunAt.
type AutomationStore struct {
	C *Client
}

func NewAutomationStore(c *Client) *AutomationStore { return &AutomationStore{C: c} }

func (s *AutomationStore) List(ctx context.Context, tenantID string) ([]domain.Automation, error) {
	ids, err := s.C.Rdb.SMembers(ctx, automationIdxKey(tenantID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list automations: %w", err)
	}

	out := make([]domain.Automation, 0, len(ids))
	for _, id := range ids {
		a, err := s.Get(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if a == nil || a.Deleted() {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

// Get returns the record even when soft-deleted; callers decide how deleted
// records are treated.
func (s *AutomationStore) Get(ctx context.Context, tenantID, id string) (*domain.Automation, error) {
	h, err := s.C.Rdb.HGetAll(ctx, automationKey(tenantID, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load automation %s: %w", id, err)
	}
	if len(h) == 0 {
		return nil, nil
	}

	var a domain.Automation
	if err := json.Unmarshal([]byte(h["record"]), &a); err != nil {
		return nil, fmt.Errorf("failed to decode automation %s: %w", id, err)
	}
	return &a, nil
}

func (s *AutomationStore) Save(ctx context.Context, a domain.Automation) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode automation %s: %w", a.ID, err)
	}
	m := map[string]any{
		"record":      b,
		"name":        a.Name,
		"active":      strconv.FormatBool(a.Active),
		"next_run_at": a.NextRunAt.UnixMilli(),
		"run_count":   a.RunCount,
	}
	if err := s.C.Rdb.HSet(ctx, automationKey(a.TenantID, a.ID), m).Err(); err != nil {
		return fmt.Errorf("failed to save automation %s: %w", a.ID, err)
	}
	if err := s.C.Rdb.SAdd(ctx, automationIdxKey(a.TenantID), a.ID).Err(); err != nil {
		return fmt.Errorf("failed to index automation %s: %w", a.ID, err)
	}

	// The due index only holds runnable automations.
	if !a.Active || a.Deleted() || a.NextRunAt.IsZero() {
		return s.C.Rdb.ZRem(ctx, automationDueKey(a.TenantID), a.ID).Err()
	}
	return s.C.Rdb.ZAdd(ctx, automationDueKey(a.TenantID), redis.Z{
		Score:  msScore(a.NextRunAt),
		Member: a.ID,
	}).Err()
}

func (s *AutomationStore) Due(ctx context.Context, tenantID string, now time.Time) ([]domain.Automation, error) {
	ids, err := s.C.Rdb.ZRangeByScore(ctx, automationDueKey(tenantID), &redis.ZRangeBy{
		Min:    "-inf",
		Max:    fmtFloat(msScore(now)),
		Offset: 0,
		Count:  128,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan due automations: %w", err)
	}

	out := make([]domain.Automation, 0, len(ids))
	for _, id := range ids {
		a, err := s.Get(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if a == nil || a.Deleted() || !a.Active {
			// Stale index entry; drop it so it is not rescanned.
			_ = s.C.Rdb.ZRem(ctx, automationDueKey(tenantID), id).Err()
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
