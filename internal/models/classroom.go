package models

import (
	"time"

	"github.com/google/uuid"
)

type Classroom struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TeacherID uuid.UUID `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateClassroomRequest struct {
	Name string `json:"name"`
}
