package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"classwatch-backend/internal/models"
)

type SessionHandler struct {
	sessionRepo sessionStore
	statsCache  statsCache
}

func NewSessionHandler(sessionRepo sessionStore, statsCache statsCache) *SessionHandler {
	return &SessionHandler{sessionRepo: sessionRepo, statsCache: statsCache}
}

// Latest reports the most recently created session for a classroom. A
// classroom with no history still answers 200, matching the query contract.
func (h *SessionHandler) Latest(w http.ResponseWriter, r *http.Request) {
	classID, err := uuid.Parse(chi.URLParam(r, "classroomId"))
	if err != nil {
		// Classroom ids are opaque to the query contract; an id that cannot
		// match any row simply has no sessions.
		writeJSON(w, http.StatusOK, map[string]string{"message": "No session found for this class."})
		return
	}

	session, err := h.sessionRepo.Latest(r.Context(), classID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, map[string]string{"message": "No session found for this class."})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to look up session", r))
		return
	}

	if session.Status {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Session is already active.",
			"session_id": session.ID,
			"status":     true,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Session exists but is not active.",
		"session_id": session.ID,
	})
}

// StartOrStop deactivates the classroom's active session if one exists,
// otherwise creates a fresh active one. The partial unique index on
// sessions(class_id) WHERE status turns a concurrent duplicate create into a
// unique violation instead of a second active row.
func (h *SessionHandler) StartOrStop(w http.ResponseWriter, r *http.Request) {
	classID, err := uuid.Parse(chi.URLParam(r, "classroomId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid classroom ID", r))
		return
	}

	deactivatedID, err := h.sessionRepo.DeactivateActive(r.Context(), classID)
	if err == nil {
		h.statsCache.InvalidateSession(r.Context(), deactivatedID)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Existing active session has been deactivated",
			"session_id": deactivatedID,
		})
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update session", r))
		return
	}

	session := &models.Session{ClassID: classID}
	if err := h.sessionRepo.Create(r.Context(), session); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // lost the race against a concurrent create
				writeJSON(w, http.StatusConflict, errorResp("CONFLICT", "An active session already exists for this classroom", r))
				return
			case "23503":
				writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Classroom not found", r))
				return
			}
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create session", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Session created successfully",
		"session_id": session.ID,
	})
}
