package models

import (
	"time"

	"github.com/google/uuid"
)

// BehaviourCategories is the fixed detection vocabulary. Both stats paths
// zero-fill against this list, so new categories only need to be added here.
var BehaviourCategories = []string{"hand-raising", "writing", "reading"}

type Behaviour struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	XAxis      int       `json:"x_axis"`
	YAxis      int       `json:"y_axis"`
	WAxis      int       `json:"w_axis"`
	HAxis      int       `json:"h_axis"`
	Confidence float64   `json:"confidence"`
	Image      string    `json:"image"`
	Behaviour  string    `json:"behaviour"`
	CreatedAt  time.Time `json:"created_at"`
}

// Detection is what the detection stage hands to the recorder.
type Detection struct {
	XAxis      int     `json:"x_axis"`
	YAxis      int     `json:"y_axis"`
	WAxis      int     `json:"w_axis"`
	HAxis      int     `json:"h_axis"`
	Confidence float64 `json:"confidence"`
	Category   string  `json:"behaviour"`
}

// ZeroFillCounts copies counts into a map that contains every category in the
// vocabulary, defaulting missing ones to zero.
func ZeroFillCounts(counts map[string]int) map[string]int {
	filled := make(map[string]int, len(BehaviourCategories))
	for _, c := range BehaviourCategories {
		filled[c] = 0
	}
	for category, n := range counts {
		filled[category] = n
	}
	return filled
}

type SessionStats struct {
	SessionID uuid.UUID      `json:"session_id"`
	ClassID   uuid.UUID      `json:"class_id"`
	StartTime time.Time      `json:"start_time"`
	Behaviors map[string]int `json:"behaviors"`
}

type ClassroomStats struct {
	ClassID        uuid.UUID      `json:"class_id"`
	SessionCount   int            `json:"session_count"`
	SessionIDs     []uuid.UUID    `json:"session_ids"`
	TotalBehaviors int            `json:"total_behaviors"`
	Behaviors      map[string]int `json:"behaviors"`
}
