package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
	"github.com/mindtrackhq/mindtrack-api/internal/repository"
)

type JournalService struct {
	repo repository.JournalRepository
}

func NewJournalService(repo repository.JournalRepository) *JournalService {
	return &JournalService{repo: repo}
}

// Save writes today's journal entry, replacing any existing entry for
// the day.
func (s *JournalService) Save(ctx context.Context, userID, entry string) (model.JournalEntry, error) {
	if entry == "" {
		return model.JournalEntry{}, fmt.Errorf("%w: entry is required", ErrInvalidInput)
	}

	saved, err := s.repo.Upsert(ctx, model.JournalEntry{
		UserID: userID,
		Date:   time.Now().UTC(),
		Entry:  entry,
	})
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("failed to save journal entry: %w", err)
	}

	return saved, nil
}

// Today returns the user's journal entry for the current UTC day.
func (s *JournalService) Today(ctx context.Context, userID string) (model.JournalEntry, error) {
	entry, err := s.repo.GetByDate(ctx, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.JournalEntry{}, ErrNotFound
		}
		return model.JournalEntry{}, fmt.Errorf("failed to get today's journal entry: %w", err)
	}
	return entry, nil
}

func (s *JournalService) ListAll(ctx context.Context, userID string) ([]model.JournalEntry, error) {
	entries, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}
