package lifecycle

import (
	"testing"
	"time"

	"taskmill/internal/domain"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

func TestEffectiveStatus_OverdueIsDerivedNotStored(t *testing.T) {
	task := domain.Task{
		Status:  domain.StatusPending,
		DueDate: testNow.Add(-time.Hour),
	}

	assert.Equal(t, domain.StatusOverdue, EffectiveStatus(task, testNow))
	// The persisted field is untouched.
	assert.Equal(t, domain.StatusPending, task.Status)
}

func TestEffectiveStatus_ExemptStatuses(t *testing.T) {
	for _, status := range []domain.TaskStatus{
		domain.StatusCompleted,
		domain.StatusReleased,
		domain.StatusCancelled,
		domain.StatusRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			task := domain.Task{Status: status, DueDate: testNow.Add(-time.Hour)}
			assert.Equal(t, status, EffectiveStatus(task, testNow))
		})
	}
}

func TestEffectiveStatus_FutureDueDate(t *testing.T) {
	task := domain.Task{Status: domain.StatusInProgress, DueDate: testNow.Add(time.Hour)}
	assert.Equal(t, domain.StatusInProgress, EffectiveStatus(task, testNow))
}

func TestRisk(t *testing.T) {
	tests := []struct {
		name   string
		status domain.TaskStatus
		dueIn  time.Duration
		want   domain.RiskIndicator
	}{
		{"past due", domain.StatusPending, -time.Hour, domain.RiskOverdue},
		{"inside 72h window", domain.StatusPending, 71 * time.Hour, domain.RiskDueSoon},
		{"exactly 72h", domain.StatusInProgress, 72 * time.Hour, domain.RiskDueSoon},
		{"beyond window", domain.StatusPending, 80 * time.Hour, domain.RiskOK},
		{"completed past due", domain.StatusCompleted, -time.Hour, domain.RiskOK},
		{"rejected past due", domain.StatusRejected, -time.Hour, domain.RiskOK},
		{"released soon due", domain.StatusReleased, time.Hour, domain.RiskOK},
		{"cancelled past due", domain.StatusCancelled, -time.Hour, domain.RiskOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := domain.Task{Status: tt.status, DueDate: testNow.Add(tt.dueIn)}
			assert.Equal(t, tt.want, Risk(task, testNow))
		})
	}
}
