package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"classwatch-backend/internal/models"
)

type StatsHandler struct {
	sessionRepo   sessionStore
	behaviourRepo behaviourStore
	classroomRepo classroomStore
	statsCache    statsCache
}

func NewStatsHandler(
	sessionRepo sessionStore,
	behaviourRepo behaviourStore,
	classroomRepo classroomStore,
	statsCache statsCache,
) *StatsHandler {
	return &StatsHandler{
		sessionRepo:   sessionRepo,
		behaviourRepo: behaviourRepo,
		classroomRepo: classroomRepo,
		statsCache:    statsCache,
	}
}

// SessionStats returns a session's behaviour counts with every category in
// the vocabulary present, zero-filled when no detections exist for it.
func (h *StatsHandler) SessionStats(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	session, err := h.sessionRepo.GetByID(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to look up session", r))
		return
	}

	h.respondSessionStats(w, r, session)
}

// ClassroomStats aggregates behaviour counts across every session of a
// classroom.
func (h *StatsHandler) ClassroomStats(w http.ResponseWriter, r *http.Request) {
	classID, err := uuid.Parse(chi.URLParam(r, "classroomId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid classroom ID", r))
		return
	}

	if _, err := h.classroomRepo.GetByID(r.Context(), classID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Classroom not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to look up classroom", r))
		return
	}

	sessionIDs, err := h.sessionRepo.ListIDsByClass(r.Context(), classID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list sessions", r))
		return
	}

	counts, err := h.behaviourRepo.CountByClass(r.Context(), classID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to aggregate behaviours", r))
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": models.ClassroomStats{
			ClassID:        classID,
			SessionCount:   len(sessionIDs),
			SessionIDs:     sessionIDs,
			TotalBehaviors: total,
			Behaviors:      models.ZeroFillCounts(counts),
		},
	})
}

// ClassroomSessionStats verifies the session belongs to the classroom before
// answering with its stats; a session owned elsewhere is reported absent.
func (h *StatsHandler) ClassroomSessionStats(w http.ResponseWriter, r *http.Request) {
	classID, err := uuid.Parse(chi.URLParam(r, "classroomId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid classroom ID", r))
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	session, err := h.sessionRepo.GetByIDInClass(r.Context(), sessionID, classID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found in this classroom", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to look up session", r))
		return
	}

	h.respondSessionStats(w, r, session)
}

func (h *StatsHandler) respondSessionStats(w http.ResponseWriter, r *http.Request, session *models.Session) {
	if cached, ok := h.statsCache.GetSessionStats(r.Context(), session.ID); ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": cached})
		return
	}

	counts, err := h.behaviourRepo.CountBySession(r.Context(), session.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to aggregate behaviours", r))
		return
	}

	stats := &models.SessionStats{
		SessionID: session.ID,
		ClassID:   session.ClassID,
		StartTime: session.ClassStartedAt,
		Behaviors: models.ZeroFillCounts(counts),
	}
	h.statsCache.SetSessionStats(r.Context(), stats)

	writeJSON(w, http.StatusOK, map[string]interface{}{"message": stats})
}
