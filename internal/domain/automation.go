package domain

import "time"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

type MonthEndRule string

const (
	MonthEndSkip       MonthEndRule = "skip"
	MonthEndUseLastDay MonthEndRule = "use_last_day"
)

type AutomationType string

const (
	AutomationTemplateTask  AutomationType = "template_task"
	AutomationProjectLinked AutomationType = "project_linked"
)

// TimeOfDay is a local wall-clock time without a date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Recurrence describes when an automation is due.
type Recurrence struct {
	Frequency    Frequency      `json:"frequency"`
	Interval     int            `json:"interval"`
	TimeOfDay    TimeOfDay      `json:"time_of_day"`
	WeeklyDays   []time.Weekday `json:"weekly_days,omitempty"`
	MonthlyDay   int            `json:"monthly_day,omitempty"`
	MonthEndRule MonthEndRule   `json:"month_end_rule,omitempty"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      *time.Time     `json:"end_date,omitempty"`
}

// TaskBlueprint is the template an automation materializes tasks from.
type TaskBlueprint struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	CategoryID  string   `json:"category_id,omitempty"`
	AssigneeID  string   `json:"assignee_id,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	OrgUnitID   string   `json:"org_unit_id,omitempty"`
	DueInDays   int      `json:"due_in_days,omitempty"`
}

type Automation struct {
	ID       string         `json:"id"`
	TenantID string         `json:"tenant_id"`
	Name     string         `json:"name"`
	Active   bool           `json:"active"`
	Type     AutomationType `json:"type"`

	ProjectID string        `json:"project_id,omitempty"`
	Blueprint TaskBlueprint `json:"blueprint"`
	Rule      Recurrence    `json:"rule"`

	NextRunAt time.Time  `json:"next_run_at"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	RunCount  int        `json:"run_count"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the automation has been soft-deleted.
func (a Automation) Deleted() bool { return a.DeletedAt != nil }
