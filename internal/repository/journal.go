package repository

import (
	"context"
	"time"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
)

type JournalRepository interface {
	// Upsert writes the user's entry for its calendar date, replacing
	// the text of an existing same-day entry.
	Upsert(ctx context.Context, entry model.JournalEntry) (model.JournalEntry, error)
	GetByDate(ctx context.Context, userID string, day time.Time) (model.JournalEntry, error)
	ListAll(ctx context.Context, userID string) ([]model.JournalEntry, error)
}
