package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
)

type PostgresCheckInRepository struct {
	db *sql.DB
}

func NewPostgresCheckIn(db *sql.DB) *PostgresCheckInRepository {
	return &PostgresCheckInRepository{db: db}
}

// checkInColumns includes the legacy goal1..goal4 columns so that rows
// written before goals became an array still normalize on read.
const checkInColumns = `id, user_id, goals, goal1, goal2, goal3, goal4, intentions, date, created_at, updated_at`

func (r *PostgresCheckInRepository) Upsert(ctx context.Context, checkin model.CheckIn) (model.CheckIn, error) {
	query := `
		INSERT INTO checkins (id, user_id, goals, intentions, date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE
		SET goals = EXCLUDED.goals, intentions = EXCLUDED.intentions, updated_at = now()
		RETURNING ` + checkInColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), checkin.UserID, pq.Array(checkin.Goals),
		checkin.Intentions, model.DayUTC(checkin.Date),
	)

	return scanCheckIn(row)
}

func (r *PostgresCheckInRepository) GetByID(ctx context.Context, userID, checkinID string) (model.CheckIn, error) {
	query := `
		SELECT ` + checkInColumns + `
		FROM checkins
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, checkinID, userID)
	return scanCheckIn(row)
}

func (r *PostgresCheckInRepository) GetByDate(ctx context.Context, userID string, day time.Time) (model.CheckIn, error) {
	query := `
		SELECT ` + checkInColumns + `
		FROM checkins
		WHERE user_id = $1 AND date = $2`

	row := r.db.QueryRowContext(ctx, query, userID, model.DayUTC(day))
	return scanCheckIn(row)
}

func (r *PostgresCheckInRepository) Update(ctx context.Context, checkin model.CheckIn) (model.CheckIn, error) {
	query := `
		UPDATE checkins
		SET goals = $1, goal1 = NULL, goal2 = NULL, goal3 = NULL, goal4 = NULL,
		    intentions = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
		RETURNING ` + checkInColumns

	row := r.db.QueryRowContext(ctx, query,
		pq.Array(checkin.Goals), checkin.Intentions, checkin.ID, checkin.UserID,
	)

	return scanCheckIn(row)
}

func (r *PostgresCheckInRepository) List(ctx context.Context, params model.CheckInListParams) (model.CheckInListResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := `
		SELECT ` + checkInColumns + `
		FROM checkins
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, params.UserID, limit, offset)
	if err != nil {
		return model.CheckInListResult{}, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	checkins := []model.CheckIn{}
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return model.CheckInListResult{}, err
		}
		checkins = append(checkins, c)
	}
	if err := rows.Err(); err != nil {
		return model.CheckInListResult{}, fmt.Errorf("failed to iterate checkins: %w", err)
	}

	var total int
	countQuery := `SELECT count(*) FROM checkins WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, params.UserID).Scan(&total); err != nil {
		return model.CheckInListResult{}, fmt.Errorf("failed to count checkins: %w", err)
	}

	return model.CheckInListResult{
		CheckIns:   checkins,
		Pagination: model.NewPagination(total, page, limit),
	}, nil
}

func (r *PostgresCheckInRepository) ListDates(ctx context.Context, userID string) ([]time.Time, error) {
	query := `SELECT date FROM checkins WHERE user_id = $1 ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkin dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan checkin date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checkin dates: %w", err)
	}

	return dates, nil
}

func scanCheckIn(row scannable) (model.CheckIn, error) {
	var c model.CheckIn
	var goals pq.StringArray
	var legacy [4]sql.NullString
	err := row.Scan(
		&c.ID, &c.UserID, &goals,
		&legacy[0], &legacy[1], &legacy[2], &legacy[3],
		&c.Intentions, &c.Date, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return model.CheckIn{}, fmt.Errorf("failed to scan checkin: %w", err)
	}

	legacyGoals := make([]string, 0, len(legacy))
	for _, g := range legacy {
		legacyGoals = append(legacyGoals, g.String)
	}
	c.Goals = model.NormalizeGoals(goals, legacyGoals...)

	return c, nil
}

var _ CheckInRepository = (*PostgresCheckInRepository)(nil)
