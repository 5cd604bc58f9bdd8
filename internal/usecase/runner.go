package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskmill/internal/domain"
	"taskmill/internal/ports"
	"taskmill/internal/recurrence"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Runner orchestrates recurring automations: creation, updates, manual runs
// and the engine tick that materializes tasks from due automations.
type Runner struct {
	Automations ports.AutomationStore
	Tasks       ports.TaskStore
	Directory   ports.DirectoryLookup
	Clock       ports.Clock
}

// AutomationPatch carries partial updates. Nil fields are left unchanged.
type AutomationPatch struct {
	Name         *string               `json:"name,omitempty"`
	Active       *bool                 `json:"active,omitempty"`
	Blueprint    *domain.TaskBlueprint `json:"blueprint,omitempty"`
	Frequency    *domain.Frequency     `json:"frequency,omitempty"`
	Interval     *int                  `json:"interval,omitempty"`
	TimeOfDay    *domain.TimeOfDay     `json:"time_of_day,omitempty"`
	WeeklyDays   *[]time.Weekday       `json:"weekly_days,omitempty"`
	MonthlyDay   *int                  `json:"monthly_day,omitempty"`
	MonthEndRule *domain.MonthEndRule  `json:"month_end_rule,omitempty"`
	StartDate    *time.Time            `json:"start_date,omitempty"`
	EndDate      *time.Time            `json:"end_date,omitempty"`
	ClearEndDate bool                  `json:"clear_end_date,omitempty"`
}

func (r Runner) Create(ctx context.Context, tenantID string, a domain.Automation) (domain.Automation, error) {
	now := r.Clock.Now()

	if strings.TrimSpace(a.Name) == "" {
		return domain.Automation{}, &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(a.Blueprint.Title) == "" {
		return domain.Automation{}, &domain.ValidationError{Field: "blueprint.title", Reason: "is required"}
	}
	if a.Type == domain.AutomationProjectLinked && a.ProjectID == "" {
		return domain.Automation{}, &domain.ValidationError{Field: "project_id", Reason: "is required for project-linked automations"}
	}
	if err := recurrence.Validate(a.Rule); err != nil {
		return domain.Automation{}, err
	}

	next, ok := recurrence.InitialNext(a.Rule, now)
	if !ok {
		return domain.Automation{}, &domain.ValidationError{Field: "end_date", Reason: "rule has no future occurrence"}
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Type == "" {
		a.Type = domain.AutomationTemplateTask
	}
	a.TenantID = tenantID
	a.Active = true
	a.NextRunAt = next
	a.LastRunAt = nil
	a.RunCount = 0
	a.CreatedAt = now
	a.DeletedAt = nil

	if err := r.Automations.Save(ctx, a); err != nil {
		return domain.Automation{}, err
	}
	return a, nil
}

func (r Runner) Update(ctx context.Context, tenantID, id string, patch AutomationPatch) (domain.Automation, error) {
	now := r.Clock.Now()

	a, err := r.Automations.Get(ctx, tenantID, id)
	if err != nil {
		return domain.Automation{}, err
	}
	if a == nil || a.Deleted() {
		return domain.Automation{}, fmt.Errorf("automation %s: %w", id, domain.ErrNotFound)
	}

	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Active != nil {
		a.Active = *patch.Active
	}
	if patch.Blueprint != nil {
		a.Blueprint = *patch.Blueprint
	}

	ruleChanged := false
	if patch.Frequency != nil {
		a.Rule.Frequency = *patch.Frequency
		ruleChanged = true
	}
	if patch.Interval != nil {
		a.Rule.Interval = *patch.Interval
		ruleChanged = true
	}
	if patch.TimeOfDay != nil {
		a.Rule.TimeOfDay = *patch.TimeOfDay
		ruleChanged = true
	}
	if patch.WeeklyDays != nil {
		a.Rule.WeeklyDays = *patch.WeeklyDays
		ruleChanged = true
	}
	if patch.MonthlyDay != nil {
		a.Rule.MonthlyDay = *patch.MonthlyDay
		ruleChanged = true
	}
	if patch.MonthEndRule != nil {
		a.Rule.MonthEndRule = *patch.MonthEndRule
		ruleChanged = true
	}
	if patch.StartDate != nil {
		a.Rule.StartDate = *patch.StartDate
		ruleChanged = true
	}
	if patch.ClearEndDate {
		a.Rule.EndDate = nil
		ruleChanged = true
	} else if patch.EndDate != nil {
		a.Rule.EndDate = patch.EndDate
		ruleChanged = true
	}

	if ruleChanged {
		if err := recurrence.Validate(a.Rule); err != nil {
			return domain.Automation{}, err
		}
		next, ok := recurrence.Next(a.Rule, now)
		if !ok {
			return domain.Automation{}, &domain.ValidationError{Field: "end_date", Reason: "rule has no future occurrence"}
		}
		a.NextRunAt = next
	}

	if err := r.Automations.Save(ctx, *a); err != nil {
		return domain.Automation{}, err
	}
	return *a, nil
}

// Delete soft-deletes an automation. The record stays for audit but is
// excluded from listing and scheduling.
func (r Runner) Delete(ctx context.Context, tenantID, id string) error {
	a, err := r.Automations.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if a == nil || a.Deleted() {
		return fmt.Errorf("automation %s: %w", id, domain.ErrNotFound)
	}
	now := r.Clock.Now()
	a.DeletedAt = &now
	return r.Automations.Save(ctx, *a)
}

// RunNow executes a single automation on demand, with the same reschedule
// bookkeeping as a scheduled run.
func (r Runner) RunNow(ctx context.Context, tenantID, id string) (domain.Task, error) {
	now := r.Clock.Now()

	a, err := r.Automations.Get(ctx, tenantID, id)
	if err != nil {
		return domain.Task{}, err
	}
	if a == nil {
		return domain.Task{}, fmt.Errorf("automation %s: %w", id, domain.ErrNotFound)
	}
	if a.Deleted() {
		return domain.Task{}, fmt.Errorf("automation %s is deleted: %w", id, domain.ErrOutOfRange)
	}
	if now.Before(a.Rule.StartDate) {
		return domain.Task{}, fmt.Errorf("automation %s has not started: %w", id, domain.ErrOutOfRange)
	}
	if end := a.Rule.EndDate; end != nil && now.After(endOfDay(*end)) {
		return domain.Task{}, fmt.Errorf("automation %s has ended: %w", id, domain.ErrOutOfRange)
	}

	t, err := r.createTaskFromAutomation(ctx, *a, now)
	if err != nil {
		return domain.Task{}, err
	}

	r.reschedule(a, now)
	if err := r.Automations.Save(ctx, *a); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// RunEngine executes every due automation of the tenant once and reschedules
// it from now, not from the missed occurrence. Missed intermediate cycles are
// collapsed into the single run. Returns how many automations executed.
func (r Runner) RunEngine(ctx context.Context, tenantID string) (int, error) {
	now := r.Clock.Now()

	due, err := r.Automations.Due(ctx, tenantID, now)
	if err != nil {
		return 0, err
	}

	executed := 0
	for i := range due {
		a := due[i]
		if !a.Active || a.Deleted() || now.Before(a.Rule.StartDate) || now.Before(a.NextRunAt) {
			continue
		}
		if end := a.Rule.EndDate; end != nil && now.After(endOfDay(*end)) {
			continue
		}

		if _, err := r.createTaskFromAutomation(ctx, a, now); err != nil {
			// Leave nextRunAt untouched so the automation is retried on
			// the next tick; the rest of the batch still runs.
			log.Ctx(ctx).Error().Err(err).
				Str("automation", a.ID).
				Str("tenant", tenantID).
				Msg("task creation failed, will retry next tick")
			continue
		}
		executed++

		r.reschedule(&a, now)
		if err := r.Automations.Save(ctx, a); err != nil {
			log.Ctx(ctx).Error().Err(err).
				Str("automation", a.ID).
				Str("tenant", tenantID).
				Msg("failed to persist reschedule")
		}
	}
	return executed, nil
}

// reschedule stamps the post-run bookkeeping: lastRunAt, runCount and the
// next occurrence computed from now. A rule with no further occurrence
// deactivates the automation instead of leaving a stale nextRunAt behind.
func (r Runner) reschedule(a *domain.Automation, now time.Time) {
	runAt := now
	a.LastRunAt = &runAt
	a.RunCount++
	if next, ok := recurrence.Next(a.Rule, now); ok {
		a.NextRunAt = next
	} else {
		a.Active = false
		a.NextRunAt = time.Time{}
	}
}

// endOfDay treats a date bound as inclusive through its final instant.
func endOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, int(time.Second-time.Nanosecond), d.Location())
}
