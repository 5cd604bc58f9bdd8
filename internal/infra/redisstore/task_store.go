package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taskmill/internal/domain"
	"taskmill/internal/ports"

	"github.com/redis/go-redis/v9"
)

var _ ports.TaskStore = (*TaskStore)(nil)

// TaskStore persists tasks as one hash per record.
type TaskStore struct {
	C *Client
}

func NewTaskStore(c *Client) *TaskStore { return &TaskStore{C: c} }

func (s *TaskStore) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	if err := s.save(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (s *TaskStore) Get(ctx context.Context, tenantID, id string) (*domain.Task, error) {
	h, err := s.C.Rdb.HGetAll(ctx, taskKey(tenantID, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load task %s: %w", id, err)
	}
	if len(h) == 0 {
		return nil, nil
	}

	var t domain.Task
	if err := json.Unmarshal([]byte(h["record"]), &t); err != nil {
		return nil, fmt.Errorf("failed to decode task %s: %w", id, err)
	}
	return &t, nil
}

func (s *TaskStore) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	if err := s.save(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// save keeps the full record as JSON, with the workflow fields mirrored into
// hash fields so they stay scannable from redis-cli.
func (s *TaskStore) save(ctx context.Context, t domain.Task) error {
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode task %s: %w", t.ID, err)
	}
	m := map[string]any{
		"record":   b,
		"status":   string(t.Status),
		"folio":    t.Folio,
		"due_date": t.DueDate.UnixMilli(),
	}
	return s.C.Rdb.HSet(ctx, taskKey(t.TenantID, t.ID), m).Err()
}
