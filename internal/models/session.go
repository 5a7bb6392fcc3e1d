package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID             uuid.UUID `json:"id"`
	ClassID        uuid.UUID `json:"class_id"`
	Status         bool      `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	ClassStartedAt time.Time `json:"class_started_at"`
}
