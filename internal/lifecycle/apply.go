package lifecycle

import (
	"strings"
	"time"

	"taskmill/internal/domain"

	"github.com/google/uuid"
)

// Apply validates the requested status change against the transition table
// and returns an updated copy of the task with exactly one history entry
// appended. It is a pure function: the input task is not mutated and no store
// is touched. The caller persists the result.
func Apply(t domain.Task, to domain.TaskStatus, payload domain.TransitionPayload, actor domain.Actor, now time.Time) (domain.Task, error) {
	from := EffectiveStatus(t, now)

	row := Find(from, to)
	if row == nil {
		return domain.Task{}, &domain.InvalidTransitionError{From: from, To: to}
	}

	comment := strings.TrimSpace(payload.Comment)
	if row.RequiresComment && comment == "" {
		return domain.Task{}, &domain.ValidationError{Field: "comment", Reason: "a comment is required for this transition"}
	}

	if row.RequiresNewDueDate {
		if payload.NewDueDate == nil {
			return domain.Task{}, &domain.ValidationError{Field: "new_due_date", Reason: "a new due date is required for this transition"}
		}
		if dateOnly(*payload.NewDueDate).Before(dateOnly(now)) {
			return domain.Task{}, &domain.ValidationError{Field: "new_due_date", Reason: "new due date must be today or later"}
		}
	}

	updated := t
	updated.History = make([]domain.HistoryEntry, len(t.History), len(t.History)+1)
	copy(updated.History, t.History)

	updated.Status = to
	if row.RequiresNewDueDate && payload.NewDueDate != nil {
		updated.DueDate = *payload.NewDueDate
	}

	switch to {
	case domain.StatusBlocked:
		blockedAt := now
		updated.BlockedReason = comment
		updated.BlockedAt = &blockedAt
	case domain.StatusRejected:
		updated.RejectedReason = comment
		updated.RejectionComment = comment
		if r := payload.Reason; r != nil {
			if r.Label != "" {
				updated.RejectedReason = r.Label
			}
			if r.CustomText != "" {
				updated.RejectionComment = r.CustomText
			}
			updated.CorrectedReason = r.Detail
		}
	}

	updated.RiskIndicator = Risk(updated, now)

	entry := domain.HistoryEntry{
		ID:        uuid.NewString(),
		Type:      historyType(from, to),
		Timestamp: now,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Details: map[string]string{
			"from_status": string(from),
			"to_status":   string(to),
		},
	}
	if comment != "" {
		entry.Details["comment"] = comment
	}
	if row.RequiresNewDueDate && payload.NewDueDate != nil {
		entry.Details["new_due_date"] = payload.NewDueDate.Format(time.RFC3339)
	}
	updated.History = append(updated.History, entry)

	return updated, nil
}

func historyType(from, to domain.TaskStatus) domain.HistoryType {
	switch {
	case to == domain.StatusRejected:
		return domain.HistoryRejected
	case from == domain.StatusOverdue && to == domain.StatusPending:
		return domain.HistoryRescheduled
	case to == domain.StatusCancelled:
		return domain.HistoryCancelled
	default:
		return domain.HistoryStatusChanged
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
