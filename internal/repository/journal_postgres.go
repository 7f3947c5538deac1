package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
)

type PostgresJournalRepository struct {
	db *sql.DB
}

func NewPostgresJournal(db *sql.DB) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db}
}

const journalColumns = `id, user_id, date, entry, created_at, updated_at`

func (r *PostgresJournalRepository) Upsert(ctx context.Context, entry model.JournalEntry) (model.JournalEntry, error) {
	query := `
		INSERT INTO journals (id, user_id, date, entry)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date) DO UPDATE
		SET entry = EXCLUDED.entry, updated_at = now()
		RETURNING ` + journalColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), entry.UserID, model.DayUTC(entry.Date), entry.Entry,
	)

	return scanJournalEntry(row)
}

func (r *PostgresJournalRepository) GetByDate(ctx context.Context, userID string, day time.Time) (model.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE user_id = $1 AND date = $2`

	row := r.db.QueryRowContext(ctx, query, userID, model.DayUTC(day))
	return scanJournalEntry(row)
}

func (r *PostgresJournalRepository) ListAll(ctx context.Context, userID string) ([]model.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE user_id = $1
		ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}

	return entries, nil
}

func scanJournalEntry(row scannable) (model.JournalEntry, error) {
	var e model.JournalEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Entry, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("failed to scan journal entry: %w", err)
	}
	return e, nil
}

var _ JournalRepository = (*PostgresJournalRepository)(nil)
