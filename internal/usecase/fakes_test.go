package usecase

import (
	"context"
	"errors"
	"time"

	"taskmill/internal/domain"
	"taskmill/internal/ports"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

var _ ports.TaskStore = (*memTaskStore)(nil)

type memTaskStore struct {
	tasks   map[string]domain.Task
	created []string
	// automation ids whose task creation should fail, matched against the
	// automationId detail of the first history entry.
	failFor map[string]bool
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: map[string]domain.Task{}, failFor: map[string]bool{}}
}

func (s *memTaskStore) Create(_ context.Context, t domain.Task) (domain.Task, error) {
	if len(t.History) > 0 && s.failFor[t.History[0].Details["automationId"]] {
		return domain.Task{}, errors.New("task store unavailable")
	}
	s.tasks[t.ID] = t
	s.created = append(s.created, t.ID)
	return t, nil
}

func (s *memTaskStore) Get(_ context.Context, _, id string) (*domain.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *memTaskStore) Update(_ context.Context, t domain.Task) (domain.Task, error) {
	s.tasks[t.ID] = t
	return t, nil
}

var _ ports.AutomationStore = (*memAutomationStore)(nil)

// memAutomationStore keeps insertion order so engine batches are
// deterministic in tests.
type memAutomationStore struct {
	order []string
	byID  map[string]domain.Automation
}

func newMemAutomationStore() *memAutomationStore {
	return &memAutomationStore{byID: map[string]domain.Automation{}}
}

func (s *memAutomationStore) List(_ context.Context, tenantID string) ([]domain.Automation, error) {
	var out []domain.Automation
	for _, id := range s.order {
		a := s.byID[id]
		if a.TenantID != tenantID || a.Deleted() {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *memAutomationStore) Get(_ context.Context, tenantID, id string) (*domain.Automation, error) {
	a, ok := s.byID[id]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	return &a, nil
}

func (s *memAutomationStore) Save(_ context.Context, a domain.Automation) error {
	if _, ok := s.byID[a.ID]; !ok {
		s.order = append(s.order, a.ID)
	}
	s.byID[a.ID] = a
	return nil
}

func (s *memAutomationStore) Due(_ context.Context, tenantID string, now time.Time) ([]domain.Automation, error) {
	var out []domain.Automation
	for _, id := range s.order {
		a := s.byID[id]
		if a.TenantID != tenantID || a.Deleted() || !a.Active {
			continue
		}
		if a.NextRunAt.IsZero() || a.NextRunAt.After(now) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

var _ ports.DirectoryLookup = staticDirectory{}

type staticDirectory struct {
	users      map[string]string
	categories map[string]string
	orgUnits   map[string]string
}

func (d staticDirectory) ResolveUserName(_ context.Context, id string) (string, error) {
	return d.users[id], nil
}

func (d staticDirectory) ResolveCategoryName(_ context.Context, id string) (string, error) {
	return d.categories[id], nil
}

func (d staticDirectory) ResolveProjectOrgUnit(_ context.Context, projectID string) (string, error) {
	return d.orgUnits[projectID], nil
}
