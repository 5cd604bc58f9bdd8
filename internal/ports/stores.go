package ports

import (
	"context"
	"time"

	"taskmill/internal/domain"
)

// Clock supplies the current instant. Injected so scheduling and lifecycle
// logic is testable without real time passing.
type Clock interface {
	Now() time.Time
}

type TaskStore interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	Get(ctx context.Context, tenantID, id string) (*domain.Task, error)
	Update(ctx context.Context, t domain.Task) (domain.Task, error)
}

type AutomationStore interface {
	// List returns the tenant's automations, excluding soft-deleted ones.
	List(ctx context.Context, tenantID string) ([]domain.Automation, error)
	Get(ctx context.Context, tenantID, id string) (*domain.Automation, error)
	Save(ctx context.Context, a domain.Automation) error
	// Due returns active, non-deleted automations with NextRunAt at or
	// before now.
	Due(ctx context.Context, tenantID string, now time.Time) ([]domain.Automation, error)
}

// DirectoryLookup resolves display names for ids owned by the host
// application's user/category directory.
type DirectoryLookup interface {
	ResolveUserName(ctx context.Context, id string) (string, error)
	ResolveCategoryName(ctx context.Context, id string) (string, error)
	ResolveProjectOrgUnit(ctx context.Context, projectID string) (string, error)
}
