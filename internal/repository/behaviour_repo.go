package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"classwatch-backend/internal/models"
)

type BehaviourRepo struct {
	pool *pgxpool.Pool
}

func NewBehaviourRepo(pool *pgxpool.Pool) *BehaviourRepo {
	return &BehaviourRepo{pool: pool}
}

func (r *BehaviourRepo) Create(ctx context.Context, b *models.Behaviour) error {
	query := `
		INSERT INTO behaviours (id, session_id, x_axis, y_axis, w_axis, h_axis, confidence, image, behaviour)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	b.ID = uuid.New()
	return r.pool.QueryRow(ctx, query,
		b.ID, b.SessionID, b.XAxis, b.YAxis, b.WAxis, b.HAxis, b.Confidence, b.Image, b.Behaviour,
	).Scan(&b.CreatedAt)
}

// CountBySession groups a session's behaviours by category. Categories with
// no rows are absent from the result; callers zero-fill against the
// vocabulary.
func (r *BehaviourRepo) CountBySession(ctx context.Context, sessionID uuid.UUID) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT behaviour, COUNT(*)
		FROM behaviours
		WHERE session_id = $1
		GROUP BY behaviour
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCounts(rows)
}

// CountByClass groups behaviours by category across every session of a
// classroom.
func (r *BehaviourRepo) CountByClass(ctx context.Context, classID uuid.UUID) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.behaviour, COUNT(*)
		FROM behaviours b
		JOIN sessions s ON s.id = b.session_id
		WHERE s.class_id = $1
		GROUP BY b.behaviour
	`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCounts(rows)
}

func scanCounts(rows pgx.Rows) (map[string]int, error) {
	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, rows.Err()
}
