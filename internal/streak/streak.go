// Package streak computes check-in statistics: total count and the
// current run of consecutive daily check-ins.
package streak

import (
	"sort"
	"time"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
)

type Stats struct {
	TotalCheckins int `json:"total_checkins"`
	CurrentStreak int `json:"current_streak"`
}

// Calculate computes stats from the dates of a user's check-ins.
//
// TotalCheckins is always the raw record count. CurrentStreak counts
// consecutive calendar days with a check-in, ending today or yesterday;
// a most recent check-in two or more days old yields 0. Input order is
// irrelevant and duplicate same-day dates are collapsed before the walk.
// Days are compared at UTC midnight.
func Calculate(dates []time.Time, now time.Time) Stats {
	stats := Stats{TotalCheckins: len(dates)}
	if len(dates) == 0 {
		return stats
	}

	days := uniqueDaysDesc(dates)

	today := model.DayUTC(now)
	if daysBetween(days[0], today) > 1 {
		return stats
	}

	stats.CurrentStreak = 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) != 1 {
			break
		}
		stats.CurrentStreak++
	}
	return stats
}

// uniqueDaysDesc normalizes every date to UTC midnight, sorts newest
// first, and drops same-day duplicates.
func uniqueDaysDesc(dates []time.Time) []time.Time {
	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = model.DayUTC(d)
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].After(days[j]) })

	out := days[:1]
	for _, d := range days[1:] {
		if !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}

// daysBetween returns the number of calendar days from earlier to later.
// Both arguments must already be UTC midnights.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
