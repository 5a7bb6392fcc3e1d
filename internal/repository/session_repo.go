package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"classwatch-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (id, class_id, status)
		VALUES ($1, $2, TRUE)
		RETURNING status, created_at, class_started_at
	`

	s.ID = uuid.New()
	return r.pool.QueryRow(ctx, query, s.ID, s.ClassID).Scan(
		&s.Status,
		&s.CreatedAt,
		&s.ClassStartedAt,
	)
}

// Latest returns the most recently created session for a classroom. The id
// tie-break keeps the ordering deterministic for equal timestamps.
func (r *SessionRepo) Latest(ctx context.Context, classID uuid.UUID) (*models.Session, error) {
	s := &models.Session{}
	query := `
		SELECT id, class_id, status, created_at, class_started_at
		FROM sessions
		WHERE class_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	err := r.pool.QueryRow(ctx, query, classID).Scan(
		&s.ID, &s.ClassID, &s.Status, &s.CreatedAt, &s.ClassStartedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DeactivateActive flips the classroom's active session to inactive and
// returns its id. pgx.ErrNoRows means there was nothing to deactivate.
func (r *SessionRepo) DeactivateActive(ctx context.Context, classID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		UPDATE sessions
		SET status = FALSE
		WHERE class_id = $1
		  AND status
		RETURNING id
	`, classID).Scan(&id)
	return id, err
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	s := &models.Session{}
	query := `
		SELECT id, class_id, status, created_at, class_started_at
		FROM sessions
		WHERE id = $1
	`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ClassID, &s.Status, &s.CreatedAt, &s.ClassStartedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByIDInClass resolves a session only if it belongs to the classroom.
func (r *SessionRepo) GetByIDInClass(ctx context.Context, id, classID uuid.UUID) (*models.Session, error) {
	s := &models.Session{}
	query := `
		SELECT id, class_id, status, created_at, class_started_at
		FROM sessions
		WHERE id = $1
		  AND class_id = $2
	`

	err := r.pool.QueryRow(ctx, query, id, classID).Scan(
		&s.ID, &s.ClassID, &s.Status, &s.CreatedAt, &s.ClassStartedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepo) ListIDsByClass(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id
		FROM sessions
		WHERE class_id = $1
		ORDER BY created_at DESC, id DESC
	`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
