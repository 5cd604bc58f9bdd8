package lifecycle

import "taskmill/internal/domain"

// Transition is one allowed edge of the task status graph.
type Transition struct {
	From               domain.TaskStatus
	To                 domain.TaskStatus
	Label              string
	RequiresComment    bool
	RequiresNewDueDate bool
	RequiredRole       string
}

// transitions is the static table of allowed status changes. Overdue appears
// only as a From: it is a derived projection, and overdue→pending is the one
// path out of it.
var transitions = []Transition{
	{From: domain.StatusPending, To: domain.StatusInProgress, Label: "Start"},
	{From: domain.StatusInProgress, To: domain.StatusBlocked, Label: "Block", RequiresComment: true},
	{From: domain.StatusBlocked, To: domain.StatusInProgress, Label: "Resume"},
	{From: domain.StatusInProgress, To: domain.StatusCompleted, Label: "Complete"},
	{From: domain.StatusBlocked, To: domain.StatusCompleted, Label: "Complete"},
	{From: domain.StatusCompleted, To: domain.StatusReleased, Label: "Release", RequiredRole: "reviewer"},
	{From: domain.StatusCompleted, To: domain.StatusRejected, Label: "Reject", RequiresComment: true, RequiredRole: "reviewer"},
	{From: domain.StatusRejected, To: domain.StatusPending, Label: "Correct"},
	{From: domain.StatusPending, To: domain.StatusCancelled, Label: "Cancel"},
	{From: domain.StatusInProgress, To: domain.StatusCancelled, Label: "Cancel"},
	{From: domain.StatusBlocked, To: domain.StatusCancelled, Label: "Cancel"},
	{From: domain.StatusOverdue, To: domain.StatusPending, Label: "Reschedule", RequiresComment: true, RequiresNewDueDate: true},
}

// Find returns the transition row for the from/to pair, or nil when the pair
// is not allowed.
func Find(from, to domain.TaskStatus) *Transition {
	for i := range transitions {
		if transitions[i].From == from && transitions[i].To == to {
			return &transitions[i]
		}
	}
	return nil
}

// Transitions returns a copy of the full table, for callers that render the
// available actions for a task.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}
