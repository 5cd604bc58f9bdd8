package recurrence

import (
	"taskmill/internal/domain"
)

// Validate rejects malformed rules before they are persisted. Each failure
// names the offending field.
func Validate(r domain.Recurrence) error {
	switch r.Frequency {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly:
	default:
		return &domain.ValidationError{Field: "frequency", Reason: "must be daily, weekly or monthly"}
	}
	if r.Interval < 1 {
		return &domain.ValidationError{Field: "interval", Reason: "must be a positive integer"}
	}
	if r.TimeOfDay.Hour < 0 || r.TimeOfDay.Hour > 23 || r.TimeOfDay.Minute < 0 || r.TimeOfDay.Minute > 59 {
		return &domain.ValidationError{Field: "time_of_day", Reason: "must be a valid hour:minute"}
	}
	if r.Frequency == domain.FrequencyWeekly && len(r.WeeklyDays) == 0 {
		return &domain.ValidationError{Field: "weekly_days", Reason: "at least one weekday is required for weekly rules"}
	}
	if r.Frequency == domain.FrequencyMonthly && (r.MonthlyDay < 1 || r.MonthlyDay > 31) {
		return &domain.ValidationError{Field: "monthly_day", Reason: "must be between 1 and 31"}
	}
	if r.StartDate.IsZero() {
		return &domain.ValidationError{Field: "start_date", Reason: "is required"}
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return &domain.ValidationError{Field: "end_date", Reason: "must not precede the start date"}
	}
	return nil
}
