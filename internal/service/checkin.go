package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
	"github.com/mindtrackhq/mindtrack-api/internal/repository"
	"github.com/mindtrackhq/mindtrack-api/internal/streak"
)

// parseCheckInDate accepts a plain date or an RFC3339 timestamp.
// Returns today when s is nil. Days after today (UTC) are rejected: a
// future-dated check-in would anchor the streak on a day that hasn't
// happened yet.
func parseCheckInDate(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, *s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD or RFC3339", ErrInvalidInput)
	}
	if model.DayUTC(t).After(model.DayUTC(time.Now())) {
		return time.Time{}, fmt.Errorf("%w: date cannot be in the future", ErrInvalidInput)
	}
	return t, nil
}

type CreateCheckInInput struct {
	Goals      []string
	Intentions string
	Date       *string
}

type UpdateCheckInInput struct {
	Goals      []string
	Intentions *string
}

type CheckInService struct {
	repo repository.CheckInRepository
}

func NewCheckInService(repo repository.CheckInRepository) *CheckInService {
	return &CheckInService{repo: repo}
}

// Create records the user's check-in for the given day. A second
// check-in on the same day replaces the first; duplicates cannot
// accumulate.
func (s *CheckInService) Create(ctx context.Context, userID string, input CreateCheckInInput) (model.CheckIn, error) {
	goals := model.NormalizeGoals(input.Goals)
	if len(goals) == 0 {
		return model.CheckIn{}, fmt.Errorf("%w: at least one goal is required", ErrInvalidInput)
	}
	if input.Intentions == "" {
		return model.CheckIn{}, fmt.Errorf("%w: intentions is required", ErrInvalidInput)
	}

	date, err := parseCheckInDate(input.Date)
	if err != nil {
		return model.CheckIn{}, err
	}

	checkin := model.CheckIn{
		UserID:     userID,
		Goals:      goals,
		Intentions: input.Intentions,
		Date:       date,
	}

	created, err := s.repo.Upsert(ctx, checkin)
	if err != nil {
		return model.CheckIn{}, fmt.Errorf("failed to save checkin: %w", err)
	}

	return created, nil
}

func (s *CheckInService) Update(ctx context.Context, userID, checkinID string, input UpdateCheckInInput) (model.CheckIn, error) {
	existing, err := s.repo.GetByID(ctx, userID, checkinID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CheckIn{}, ErrNotFound
		}
		return model.CheckIn{}, fmt.Errorf("failed to get checkin for update: %w", err)
	}

	if input.Goals != nil {
		goals := model.NormalizeGoals(input.Goals)
		if len(goals) == 0 {
			return model.CheckIn{}, fmt.Errorf("%w: at least one goal is required", ErrInvalidInput)
		}
		existing.Goals = goals
	}
	if input.Intentions != nil {
		if *input.Intentions == "" {
			return model.CheckIn{}, fmt.Errorf("%w: intentions cannot be empty", ErrInvalidInput)
		}
		existing.Intentions = *input.Intentions
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.CheckIn{}, fmt.Errorf("failed to update checkin: %w", err)
	}

	return updated, nil
}

func (s *CheckInService) List(ctx context.Context, params model.CheckInListParams) (model.CheckInListResult, error) {
	result, err := s.repo.List(ctx, params)
	if err != nil {
		return model.CheckInListResult{}, fmt.Errorf("failed to list checkins: %w", err)
	}
	return result, nil
}

// Today returns the user's check-in for the current UTC calendar day.
func (s *CheckInService) Today(ctx context.Context, userID string) (model.CheckIn, error) {
	checkin, err := s.repo.GetByDate(ctx, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CheckIn{}, ErrNotFound
		}
		return model.CheckIn{}, fmt.Errorf("failed to get today's checkin: %w", err)
	}
	return checkin, nil
}

// Stats computes the user's total check-in count and current streak.
func (s *CheckInService) Stats(ctx context.Context, userID string) (streak.Stats, error) {
	dates, err := s.repo.ListDates(ctx, userID)
	if err != nil {
		return streak.Stats{}, fmt.Errorf("failed to load checkin dates: %w", err)
	}
	return streak.Calculate(dates, time.Now()), nil
}
