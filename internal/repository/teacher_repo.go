package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"classwatch-backend/internal/models"
)

type TeacherRepo struct {
	pool *pgxpool.Pool
}

func NewTeacherRepo(pool *pgxpool.Pool) *TeacherRepo {
	return &TeacherRepo{pool: pool}
}

func (r *TeacherRepo) Create(ctx context.Context, t *models.Teacher) error {
	query := `
		INSERT INTO teachers (id, email, password_hash, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING is_active, created_at
	`

	t.ID = uuid.New()
	return r.pool.QueryRow(ctx, query, t.ID, t.Email, t.PasswordHash, t.FullName).Scan(
		&t.IsActive, &t.CreatedAt,
	)
}

func (r *TeacherRepo) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	t := &models.Teacher{}
	query := `SELECT id, email, password_hash, full_name, is_active, created_at, last_login_at
		FROM teachers WHERE email = $1`

	err := r.pool.QueryRow(ctx, query, email).Scan(
		&t.ID, &t.Email, &t.PasswordHash, &t.FullName, &t.IsActive, &t.CreatedAt, &t.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TeacherRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	t := &models.Teacher{}
	query := `SELECT id, email, password_hash, full_name, is_active, created_at, last_login_at
		FROM teachers WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Email, &t.PasswordHash, &t.FullName, &t.IsActive, &t.CreatedAt, &t.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TeacherRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE teachers SET last_login_at = NOW() WHERE id = $1", id)
	return err
}
