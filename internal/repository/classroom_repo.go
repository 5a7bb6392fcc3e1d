package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"classwatch-backend/internal/models"
)

type ClassroomRepo struct {
	pool *pgxpool.Pool
}

func NewClassroomRepo(pool *pgxpool.Pool) *ClassroomRepo {
	return &ClassroomRepo{pool: pool}
}

func (r *ClassroomRepo) Create(ctx context.Context, c *models.Classroom) error {
	query := `
		INSERT INTO classrooms (id, name, teacher_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	c.ID = uuid.New()
	return r.pool.QueryRow(ctx, query, c.ID, c.Name, c.TeacherID).Scan(&c.CreatedAt)
}

func (r *ClassroomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error) {
	c := &models.Classroom{}
	query := `SELECT id, name, teacher_id, created_at FROM classrooms WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.TeacherID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClassroomRepo) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Classroom, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, teacher_id, created_at
		FROM classrooms
		WHERE teacher_id = $1
		ORDER BY created_at DESC
	`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classrooms := []models.Classroom{}
	for rows.Next() {
		var c models.Classroom
		if err := rows.Scan(&c.ID, &c.Name, &c.TeacherID, &c.CreatedAt); err != nil {
			return nil, err
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, rows.Err()
}
