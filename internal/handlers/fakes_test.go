package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"classwatch-backend/internal/models"
)

// In-memory stands-ins for the repositories, cache, and auth service, with
// the same row semantics the SQL enforces.

type memSessionStore struct {
	sessions  []*models.Session
	createErr error
}

func (m *memSessionStore) Create(ctx context.Context, s *models.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	s.ID = uuid.New()
	s.Status = true
	s.CreatedAt = time.Now()
	s.ClassStartedAt = s.CreatedAt
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *memSessionStore) Latest(ctx context.Context, classID uuid.UUID) (*models.Session, error) {
	var latest *models.Session
	for _, s := range m.sessions {
		if s.ClassID != classID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *latest
	return &copied, nil
}

func (m *memSessionStore) DeactivateActive(ctx context.Context, classID uuid.UUID) (uuid.UUID, error) {
	for _, s := range m.sessions {
		if s.ClassID == classID && s.Status {
			s.Status = false
			return s.ID, nil
		}
	}
	return uuid.Nil, pgx.ErrNoRows
}

func (m *memSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	for _, s := range m.sessions {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memSessionStore) GetByIDInClass(ctx context.Context, id, classID uuid.UUID) (*models.Session, error) {
	for _, s := range m.sessions {
		if s.ID == id && s.ClassID == classID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memSessionStore) ListIDsByClass(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for _, s := range m.sessions {
		if s.ClassID == classID {
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}

type memBehaviourStore struct {
	sessions   *memSessionStore
	behaviours []*models.Behaviour
	createErr  error
}

func (m *memBehaviourStore) Create(ctx context.Context, b *models.Behaviour) error {
	if m.createErr != nil {
		return m.createErr
	}
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	m.behaviours = append(m.behaviours, b)
	return nil
}

func (m *memBehaviourStore) CountBySession(ctx context.Context, sessionID uuid.UUID) (map[string]int, error) {
	counts := make(map[string]int)
	for _, b := range m.behaviours {
		if b.SessionID == sessionID {
			counts[b.Behaviour]++
		}
	}
	return counts, nil
}

func (m *memBehaviourStore) CountByClass(ctx context.Context, classID uuid.UUID) (map[string]int, error) {
	counts := make(map[string]int)
	for _, b := range m.behaviours {
		s, err := m.sessions.GetByID(ctx, b.SessionID)
		if err != nil {
			continue
		}
		if s.ClassID == classID {
			counts[b.Behaviour]++
		}
	}
	return counts, nil
}

type memClassroomStore struct {
	classrooms []*models.Classroom
}

func (m *memClassroomStore) Create(ctx context.Context, c *models.Classroom) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	m.classrooms = append(m.classrooms, c)
	return nil
}

func (m *memClassroomStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error) {
	for _, c := range m.classrooms {
		if c.ID == id {
			copied := *c
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memClassroomStore) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Classroom, error) {
	classrooms := []models.Classroom{}
	for _, c := range m.classrooms {
		if c.TeacherID == teacherID {
			classrooms = append(classrooms, *c)
		}
	}
	return classrooms, nil
}

type memStatsCache struct {
	entries     map[uuid.UUID]*models.SessionStats
	invalidated []uuid.UUID
}

func newMemStatsCache() *memStatsCache {
	return &memStatsCache{entries: make(map[uuid.UUID]*models.SessionStats)}
}

func (c *memStatsCache) GetSessionStats(ctx context.Context, sessionID uuid.UUID) (*models.SessionStats, bool) {
	stats, ok := c.entries[sessionID]
	return stats, ok
}

func (c *memStatsCache) SetSessionStats(ctx context.Context, stats *models.SessionStats) {
	c.entries[stats.SessionID] = stats
}

func (c *memStatsCache) InvalidateSession(ctx context.Context, sessionID uuid.UUID) {
	delete(c.entries, sessionID)
	c.invalidated = append(c.invalidated, sessionID)
}

type fakeAuthService struct {
	logoutErr error
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Teacher, error) {
	return &models.Teacher{ID: uuid.New(), Email: req.Email, FullName: req.FullName}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthTokens, error) {
	return &models.AuthTokens{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	return &models.AuthTokens{AccessToken: "access", RefreshToken: "rotated", ExpiresIn: 900}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	return f.logoutErr
}
