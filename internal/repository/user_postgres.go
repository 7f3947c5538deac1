package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUser(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, cognito_sub, email, name, created_at, updated_at`

func (r *PostgresUserRepository) GetOrCreate(ctx context.Context, cognitoSub, email string) (model.User, error) {
	query := `
		INSERT INTO users (id, cognito_sub, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (cognito_sub) DO UPDATE SET email = EXCLUDED.email
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, uuid.NewString(), cognitoSub, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByCognitoSub(ctx context.Context, cognitoSub string) (model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE cognito_sub = $1`

	row := r.db.QueryRowContext(ctx, query, cognitoSub)
	return scanUser(row)
}

func (r *PostgresUserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	query := `
		UPDATE users
		SET name = $1, updated_at = now()
		WHERE id = $2
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, user.Name, user.ID)
	return scanUser(row)
}

func scanUser(row scannable) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.CognitoSub, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

var _ UserRepository = (*PostgresUserRepository)(nil)
