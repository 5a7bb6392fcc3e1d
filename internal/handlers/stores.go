package handlers

import (
	"context"

	"github.com/google/uuid"

	"classwatch-backend/internal/models"
)

// Narrow views of the repositories, cache, and auth service. The concrete
// implementations in repository and services satisfy these; handler tests
// substitute in-memory ones.

type sessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	Latest(ctx context.Context, classID uuid.UUID) (*models.Session, error)
	DeactivateActive(ctx context.Context, classID uuid.UUID) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	GetByIDInClass(ctx context.Context, id, classID uuid.UUID) (*models.Session, error)
	ListIDsByClass(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error)
}

type behaviourStore interface {
	Create(ctx context.Context, b *models.Behaviour) error
	CountBySession(ctx context.Context, sessionID uuid.UUID) (map[string]int, error)
	CountByClass(ctx context.Context, classID uuid.UUID) (map[string]int, error)
}

type classroomStore interface {
	Create(ctx context.Context, c *models.Classroom) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Classroom, error)
}

type statsCache interface {
	GetSessionStats(ctx context.Context, sessionID uuid.UUID) (*models.SessionStats, bool)
	SetSessionStats(ctx context.Context, stats *models.SessionStats)
	InvalidateSession(ctx context.Context, sessionID uuid.UUID)
}

type authService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Teacher, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthTokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error)
	Logout(ctx context.Context, refreshToken string) error
}
