package usecase

import (
	"context"
	"strconv"
	"time"

	"taskmill/internal/domain"
	"taskmill/internal/lifecycle"

	"github.com/google/uuid"
)

// defaultDueInDays applies when a blueprint does not set a due offset.
const defaultDueInDays = 7

// taskDueHour pins automation-created due dates to a fixed local
// time-of-day, so the due instant does not drift with the engine's tick time.
const taskDueHour = 12

// createTaskFromAutomation materializes one task from the automation's
// blueprint, attributed to the system actor.
func (r Runner) createTaskFromAutomation(ctx context.Context, a domain.Automation, now time.Time) (domain.Task, error) {
	bp := a.Blueprint

	dueInDays := bp.DueInDays
	if dueInDays <= 0 {
		dueInDays = defaultDueInDays
	}
	due := now.AddDate(0, 0, dueInDays)
	due = time.Date(due.Year(), due.Month(), due.Day(), taskDueHour, 0, 0, 0, due.Location())

	assigneeName := "unassigned"
	if bp.AssigneeID != "" {
		if name, err := r.Directory.ResolveUserName(ctx, bp.AssigneeID); err == nil && name != "" {
			assigneeName = name
		}
	}

	categoryName := ""
	if bp.CategoryID != "" {
		if name, err := r.Directory.ResolveCategoryName(ctx, bp.CategoryID); err == nil {
			categoryName = name
		}
	}

	orgUnitID := bp.OrgUnitID
	if a.Type == domain.AutomationProjectLinked && a.ProjectID != "" {
		if ou, err := r.Directory.ResolveProjectOrgUnit(ctx, a.ProjectID); err == nil && ou != "" {
			orgUnitID = ou
		}
	}

	projectID := bp.ProjectID
	if a.ProjectID != "" {
		projectID = a.ProjectID
	}

	t := domain.Task{
		ID:            uuid.NewString(),
		TenantID:      a.TenantID,
		Folio:         folio(a.ID, now),
		Title:         bp.Title,
		Description:   bp.Description,
		CategoryID:    bp.CategoryID,
		CategoryName:  categoryName,
		AssigneeID:    bp.AssigneeID,
		AssigneeName:  assigneeName,
		ProjectID:     projectID,
		OrgUnitID:     orgUnitID,
		Tags:          bp.Tags,
		Status:        domain.StatusPending,
		DueDate:       due,
		CreatedAt:     now,
		CreatedBy:     domain.SystemActor.ID,
		CreatedByName: domain.SystemActor.Name,
	}
	t.RiskIndicator = lifecycle.Risk(t, now)
	t.History = []domain.HistoryEntry{{
		ID:        uuid.NewString(),
		Type:      domain.HistoryCreated,
		Timestamp: now,
		ActorID:   domain.SystemActor.ID,
		ActorName: domain.SystemActor.Name,
		Details: map[string]string{
			"createdByAutomation": "true",
			"automationId":        a.ID,
			"automationName":      a.Name,
		},
	}}

	return r.Tasks.Create(ctx, t)
}

// folio builds a human-readable, collision-resistant sequence code from the
// automation id and a time-based token.
func folio(automationID string, now time.Time) string {
	prefix := automationID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	token := strconv.FormatInt(now.UnixMilli(), 36)
	return "AUT-" + prefix + "-" + token + "-" + uuid.NewString()[:4]
}
