package lifecycle

import (
	"time"

	"taskmill/internal/domain"
)

// dueSoonWindow is how far ahead of the due date a task is flagged at risk.
const dueSoonWindow = 72 * time.Hour

// overdueExempt are the statuses the overdue projection never applies to.
var overdueExempt = map[domain.TaskStatus]bool{
	domain.StatusCompleted: true,
	domain.StatusReleased:  true,
	domain.StatusCancelled: true,
	domain.StatusRejected:  true,
}

// EffectiveStatus overlays the time-based overdue projection on the persisted
// status. It is computed on every read and never stored, so a task becomes
// overdue without a write and stops being overdue as soon as its status or
// due date changes.
func EffectiveStatus(t domain.Task, now time.Time) domain.TaskStatus {
	if t.DueDate.Before(now) && !overdueExempt[t.Status] {
		return domain.StatusOverdue
	}
	return t.Status
}

// Risk classifies how close a task is to missing its due date.
func Risk(t domain.Task, now time.Time) domain.RiskIndicator {
	if overdueExempt[t.Status] {
		return domain.RiskOK
	}
	if t.DueDate.Before(now) {
		return domain.RiskOverdue
	}
	if t.DueDate.Sub(now) <= dueSoonWindow {
		return domain.RiskDueSoon
	}
	return domain.RiskOK
}
