package repository

import (
	"context"
	"time"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
)

type CheckInRepository interface {
	// Upsert creates the user's check-in for its calendar date, or
	// replaces the goals/intentions of an existing same-day check-in.
	Upsert(ctx context.Context, checkin model.CheckIn) (model.CheckIn, error)
	GetByID(ctx context.Context, userID, checkinID string) (model.CheckIn, error)
	GetByDate(ctx context.Context, userID string, day time.Time) (model.CheckIn, error)
	Update(ctx context.Context, checkin model.CheckIn) (model.CheckIn, error)
	List(ctx context.Context, params model.CheckInListParams) (model.CheckInListResult, error)
	// ListDates returns the dates of every check-in the user has made,
	// newest first. Input to the streak calculation.
	ListDates(ctx context.Context, userID string) ([]time.Time, error)
}
