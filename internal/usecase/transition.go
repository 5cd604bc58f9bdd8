package usecase

import (
	"context"
	"fmt"

	"taskmill/internal/domain"
	"taskmill/internal/lifecycle"
	"taskmill/internal/ports"
)

// Transitioner applies validated status changes to stored tasks.
type Transitioner struct {
	Tasks     ports.TaskStore
	Directory ports.DirectoryLookup
	Clock     ports.Clock
}

func (s Transitioner) Apply(ctx context.Context, tenantID, taskID string, to domain.TaskStatus, payload domain.TransitionPayload, actorID string) (domain.Task, error) {
	t, err := s.Tasks.Get(ctx, tenantID, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if t == nil {
		return domain.Task{}, fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
	}

	actor := domain.Actor{ID: actorID, Name: actorID}
	if name, err := s.Directory.ResolveUserName(ctx, actorID); err == nil && name != "" {
		actor.Name = name
	}

	updated, err := lifecycle.Apply(*t, to, payload, actor, s.Clock.Now())
	if err != nil {
		return domain.Task{}, err
	}

	return s.Tasks.Update(ctx, updated)
}
