package model

import (
	"strings"
	"time"
)

// CheckIn is a user's daily record of goals and intentions.
// Date carries calendar-day granularity only; time-of-day is not meaningful.
type CheckIn struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Goals      []string  `json:"goals"`
	Intentions string    `json:"intentions"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NormalizeGoals produces the canonical goal list from whichever shape a
// stored check-in carries: the goals array, or the older goal1..goal4
// discrete columns. The array wins when it holds at least one non-blank
// entry; otherwise the legacy fields are used. Blanks are dropped and
// order is preserved.
func NormalizeGoals(goals []string, legacy ...string) []string {
	out := trimNonBlank(goals)
	if len(out) > 0 {
		return out
	}
	return trimNonBlank(legacy)
}

func trimNonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, g := range in {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// DayUTC truncates t to midnight UTC. All calendar-day comparisons
// (streaks, today's check-in, journal upserts) use this boundary.
func DayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type CheckInListParams struct {
	UserID string
	Page   int
	Limit  int
}

type CheckInListResult struct {
	CheckIns   []CheckIn  `json:"checkins"`
	Pagination Pagination `json:"pagination"`
}

// Pagination describes a page/limit window over a collection.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes metadata for a page of size limit over total items.
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}
