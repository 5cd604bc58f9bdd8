package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"taskmill/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskFromAutomation(t *testing.T) {
	r, _, tasks := newRunner(engineNow)

	a := dailyAutomation("a-1", engineNow)
	a.Blueprint.Description = "walk the floor"
	a.Blueprint.Tags = []string{"safety"}
	a.Blueprint.DueInDays = 3

	task, err := r.createTaskFromAutomation(context.Background(), a, engineNow)
	require.NoError(t, err)
	assert.Len(t, tasks.created, 1)

	assert.Equal(t, tenant, task.TenantID)
	assert.Equal(t, "inspect the line", task.Title)
	assert.Equal(t, "walk the floor", task.Description)
	assert.Equal(t, []string{"safety"}, task.Tags)
	assert.Equal(t, domain.StatusPending, task.Status)

	// Due date is now + 3 days, pinned to noon.
	assert.Equal(t, time.Date(2024, 6, 18, 12, 0, 0, 0, time.UTC), task.DueDate)

	// Directory-resolved names.
	assert.Equal(t, "Grace Hopper", task.AssigneeName)
	assert.Equal(t, "Maintenance", task.CategoryName)

	// System provenance.
	assert.Equal(t, domain.SystemActor.ID, task.CreatedBy)
	assert.Equal(t, domain.SystemActor.Name, task.CreatedByName)

	require.Len(t, task.History, 1)
	entry := task.History[0]
	assert.Equal(t, domain.HistoryCreated, entry.Type)
	assert.Equal(t, domain.SystemActor.ID, entry.ActorID)
	assert.Equal(t, "true", entry.Details["createdByAutomation"])
	assert.Equal(t, "a-1", entry.Details["automationId"])
	assert.Equal(t, "daily inspection", entry.Details["automationName"])
}

func TestCreateTaskFromAutomation_Defaults(t *testing.T) {
	r, _, _ := newRunner(engineNow)

	a := dailyAutomation("a-1", engineNow)
	a.Blueprint.AssigneeID = ""
	a.Blueprint.CategoryID = ""
	a.Blueprint.DueInDays = 0

	task, err := r.createTaskFromAutomation(context.Background(), a, engineNow)
	require.NoError(t, err)

	assert.Equal(t, "unassigned", task.AssigneeName)
	assert.Empty(t, task.CategoryName)
	// DueInDays defaults to 7.
	assert.Equal(t, time.Date(2024, 6, 22, 12, 0, 0, 0, time.UTC), task.DueDate)
}

func TestCreateTaskFromAutomation_UnknownAssigneeFallsBack(t *testing.T) {
	r, _, _ := newRunner(engineNow)

	a := dailyAutomation("a-1", engineNow)
	a.Blueprint.AssigneeID = "u-unknown"

	task, err := r.createTaskFromAutomation(context.Background(), a, engineNow)
	require.NoError(t, err)
	assert.Equal(t, "unassigned", task.AssigneeName)
}

func TestCreateTaskFromAutomation_ProjectLinkedResolvesOrgUnit(t *testing.T) {
	r, _, _ := newRunner(engineNow)

	a := dailyAutomation("a-1", engineNow)
	a.Type = domain.AutomationProjectLinked
	a.ProjectID = "p-9"

	task, err := r.createTaskFromAutomation(context.Background(), a, engineNow)
	require.NoError(t, err)
	assert.Equal(t, "ou-north", task.OrgUnitID)
	assert.Equal(t, "p-9", task.ProjectID)
}

func TestFolio(t *testing.T) {
	f := folio("abcdef1234567890", engineNow)
	assert.True(t, strings.HasPrefix(f, "AUT-abcdef12-"), f)

	// Two tasks minted at the same instant still get distinct folios.
	assert.NotEqual(t, f, folio("abcdef1234567890", engineNow))
}
