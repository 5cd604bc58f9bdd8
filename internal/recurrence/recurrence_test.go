package recurrence

import (
	"testing"
	"time"

	"taskmill/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func dailyRule(interval int) domain.Recurrence {
	return domain.Recurrence{
		Frequency: domain.FrequencyDaily,
		Interval:  interval,
		TimeOfDay: domain.TimeOfDay{Hour: 9},
		StartDate: date(2024, 1, 1),
	}
}

func TestNext_Daily(t *testing.T) {
	t.Run("time of day already passed rolls to next day", func(t *testing.T) {
		next, ok := Next(dailyRule(1), at(2024, 1, 1, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 2, 9, 0), next)
	})

	t.Run("time of day still ahead stays on the same day", func(t *testing.T) {
		next, ok := Next(dailyRule(1), at(2024, 1, 1, 8, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 1, 9, 0), next)
	})

	t.Run("interval advances by N days", func(t *testing.T) {
		next, ok := Next(dailyRule(3), at(2024, 1, 1, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 4, 9, 0), next)
	})

	t.Run("future start date pulls the candidate onto the grid", func(t *testing.T) {
		r := dailyRule(3)
		r.StartDate = date(2024, 1, 10)
		next, ok := Next(r, at(2024, 1, 1, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 10, 9, 0), next)
	})
}

func TestNext_Weekly(t *testing.T) {
	base := domain.Recurrence{
		Frequency:  domain.FrequencyWeekly,
		Interval:   1,
		TimeOfDay:  domain.TimeOfDay{Hour: 9},
		WeeklyDays: []time.Weekday{time.Monday},
		StartDate:  date(2024, 1, 1),
	}

	t.Run("from a wednesday lands on next monday", func(t *testing.T) {
		// 2024-01-03 is a Wednesday.
		next, ok := Next(base, at(2024, 1, 3, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 8, 9, 0), next)
		assert.Equal(t, time.Monday, next.Weekday())
	})

	t.Run("same weekday before time of day fires today", func(t *testing.T) {
		// 2024-01-08 is a Monday.
		next, ok := Next(base, at(2024, 1, 8, 8, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 8, 9, 0), next)
	})

	t.Run("multiple weekdays pick the nearest", func(t *testing.T) {
		r := base
		r.WeeklyDays = []time.Weekday{time.Monday, time.Friday}
		next, ok := Next(r, at(2024, 1, 3, 10, 0))
		require.True(t, ok)
		// Friday 2024-01-05 comes before Monday 2024-01-08.
		assert.Equal(t, at(2024, 1, 5, 9, 0), next)
	})

	t.Run("interval multiplies whole weeks", func(t *testing.T) {
		r := base
		r.Interval = 2
		next, ok := Next(r, at(2024, 1, 3, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 15, 9, 0), next)
	})

	t.Run("future start restarts the weekday search", func(t *testing.T) {
		r := base
		r.WeeklyDays = []time.Weekday{time.Wednesday}
		r.StartDate = date(2024, 1, 15) // a Monday
		next, ok := Next(r, at(2024, 1, 3, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 17, 9, 0), next)
	})
}

func TestNext_Monthly(t *testing.T) {
	base := domain.Recurrence{
		Frequency:  domain.FrequencyMonthly,
		Interval:   1,
		TimeOfDay:  domain.TimeOfDay{Hour: 9},
		MonthlyDay: 15,
		StartDate:  date(2024, 1, 1),
	}

	t.Run("day still ahead in current month", func(t *testing.T) {
		next, ok := Next(base, at(2024, 1, 10, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 15, 9, 0), next)
	})

	t.Run("day already passed rolls to next month", func(t *testing.T) {
		next, ok := Next(base, at(2024, 1, 20, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 2, 15, 9, 0), next)
	})

	t.Run("day 31 with last-day rule snaps to february 29 in a leap year", func(t *testing.T) {
		r := base
		r.MonthlyDay = 31
		r.MonthEndRule = domain.MonthEndUseLastDay
		next, ok := Next(r, at(2024, 2, 15, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 2, 29, 9, 0), next)
	})

	t.Run("day 31 with last-day rule in a 30 day month", func(t *testing.T) {
		r := base
		r.MonthlyDay = 31
		r.MonthEndRule = domain.MonthEndUseLastDay
		next, ok := Next(r, at(2024, 3, 31, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 4, 30, 9, 0), next)
	})

	t.Run("day 31 without last-day rule clamps at the safe seed", func(t *testing.T) {
		r := base
		r.MonthlyDay = 31
		r.MonthEndRule = domain.MonthEndSkip
		next, ok := Next(r, at(2024, 2, 15, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 2, 28, 9, 0), next)
	})

	t.Run("future start advances whole interval steps", func(t *testing.T) {
		r := base
		r.MonthlyDay = 10
		r.Interval = 2
		r.StartDate = date(2024, 7, 1)
		next, ok := Next(r, at(2024, 1, 20, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 8, 10, 9, 0), next)
	})

	t.Run("december rolls into january", func(t *testing.T) {
		next, ok := Next(base, at(2024, 12, 20, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2025, 1, 15, 9, 0), next)
	})
}

func TestNext_EndDate(t *testing.T) {
	t.Run("candidate past end date reports no occurrence", func(t *testing.T) {
		r := dailyRule(1)
		end := date(2024, 1, 1)
		r.EndDate = &end
		next, ok := Next(r, at(2024, 1, 1, 10, 0))
		assert.False(t, ok)
		assert.True(t, next.IsZero())
	})

	t.Run("candidate on the end date itself is valid", func(t *testing.T) {
		r := dailyRule(1)
		end := date(2024, 1, 2)
		r.EndDate = &end
		next, ok := Next(r, at(2024, 1, 1, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 1, 2, 9, 0), next)
	})
}

func TestInitialNext(t *testing.T) {
	t.Run("future start schedules the start date itself", func(t *testing.T) {
		r := dailyRule(1)
		r.StartDate = date(2024, 3, 1)
		next, ok := InitialNext(r, at(2024, 1, 1, 0, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 3, 1, 9, 0), next)
	})

	t.Run("past start schedules forward from now without backlog", func(t *testing.T) {
		r := dailyRule(1)
		next, ok := InitialNext(r, at(2024, 6, 15, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(2024, 6, 16, 9, 0), next)
	})

	t.Run("expired end date reports no occurrence", func(t *testing.T) {
		r := dailyRule(1)
		end := date(2024, 2, 1)
		r.EndDate = &end
		_, ok := InitialNext(r, at(2024, 6, 15, 10, 0))
		assert.False(t, ok)
	})
}

func TestValidate(t *testing.T) {
	valid := domain.Recurrence{
		Frequency: domain.FrequencyDaily,
		Interval:  1,
		TimeOfDay: domain.TimeOfDay{Hour: 9},
		StartDate: date(2024, 1, 1),
	}
	require.NoError(t, Validate(valid))

	tests := []struct {
		name  string
		mut   func(*domain.Recurrence)
		field string
	}{
		{"unknown frequency", func(r *domain.Recurrence) { r.Frequency = "hourly" }, "frequency"},
		{"zero interval", func(r *domain.Recurrence) { r.Interval = 0 }, "interval"},
		{"negative interval", func(r *domain.Recurrence) { r.Interval = -2 }, "interval"},
		{"bad hour", func(r *domain.Recurrence) { r.TimeOfDay.Hour = 24 }, "time_of_day"},
		{"bad minute", func(r *domain.Recurrence) { r.TimeOfDay.Minute = 60 }, "time_of_day"},
		{"weekly without weekdays", func(r *domain.Recurrence) { r.Frequency = domain.FrequencyWeekly }, "weekly_days"},
		{"monthly without day", func(r *domain.Recurrence) { r.Frequency = domain.FrequencyMonthly }, "monthly_day"},
		{"monthly day out of range", func(r *domain.Recurrence) {
			r.Frequency = domain.FrequencyMonthly
			r.MonthlyDay = 32
		}, "monthly_day"},
		{"missing start date", func(r *domain.Recurrence) { r.StartDate = time.Time{} }, "start_date"},
		{"end before start", func(r *domain.Recurrence) {
			end := date(2023, 12, 1)
			r.EndDate = &end
		}, "end_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mut(&r)
			err := Validate(r)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
