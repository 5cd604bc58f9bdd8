package domain

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusCompleted  TaskStatus = "completed"
	StatusReleased   TaskStatus = "released"
	StatusRejected   TaskStatus = "rejected"
	StatusCancelled  TaskStatus = "cancelled"

	// StatusOverdue is a read-time projection. It is never written to the
	// persisted status field.
	StatusOverdue TaskStatus = "overdue"
)

type RiskIndicator string

const (
	RiskOK      RiskIndicator = "ok"
	RiskDueSoon RiskIndicator = "due_soon"
	RiskOverdue RiskIndicator = "overdue"
)

type HistoryType string

const (
	HistoryCreated         HistoryType = "CREATED"
	HistoryStatusChanged   HistoryType = "STATUS_CHANGED"
	HistoryRejected        HistoryType = "REJECTED"
	HistoryRescheduled     HistoryType = "RESCHEDULED"
	HistoryCancelled       HistoryType = "CANCELLED"
	HistoryCommentAdded    HistoryType = "COMMENT_ADDED"
	HistoryAttachmentAdded HistoryType = "ATTACHMENT_ADDED"
)

// HistoryEntry is one row of a task's audit trail. Entries are append-only.
type HistoryEntry struct {
	ID        string            `json:"id"`
	Type      HistoryType       `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	ActorID   string            `json:"actor_id"`
	ActorName string            `json:"actor_name"`
	Details   map[string]string `json:"details,omitempty"`
}

type Task struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Folio    string `json:"folio"`

	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	CategoryID   string   `json:"category_id,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	AssigneeID   string   `json:"assignee_id,omitempty"`
	AssigneeName string   `json:"assignee_name,omitempty"`
	ProjectID    string   `json:"project_id,omitempty"`
	OrgUnitID    string   `json:"org_unit_id,omitempty"`
	Tags         []string `json:"tags,omitempty"`

	Status        TaskStatus    `json:"status"`
	Priority      string        `json:"priority,omitempty"`
	DueDate       time.Time     `json:"due_date"`
	RiskIndicator RiskIndicator `json:"risk_indicator"`

	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`

	BlockedReason    string     `json:"blocked_reason,omitempty"`
	BlockedAt        *time.Time `json:"blocked_at,omitempty"`
	RejectedReason   string     `json:"rejected_reason,omitempty"`
	RejectionComment string     `json:"rejection_comment,omitempty"`
	CorrectedReason  string     `json:"corrected_reason,omitempty"`

	History []HistoryEntry `json:"history"`
}

// Actor identifies who performed a mutation, for audit history.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SystemActor is the reserved identity stamped on automation-created tasks,
// so history never confuses automated and human provenance.
var SystemActor = Actor{ID: "system", Name: "System"}

// TransitionPayload carries the caller-supplied data for a status change.
type TransitionPayload struct {
	Comment    string           `json:"comment,omitempty"`
	NewDueDate *time.Time       `json:"new_due_date,omitempty"`
	Reason     *RejectionReason `json:"reason,omitempty"`
}

// RejectionReason is the richer reason object a rejection form submits.
type RejectionReason struct {
	Label      string `json:"label,omitempty"`
	CustomText string `json:"custom_text,omitempty"`
	Detail     string `json:"detail,omitempty"`
}
