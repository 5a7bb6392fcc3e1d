package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"classwatch-backend/internal/models"
	"classwatch-backend/internal/services"
)

type DetectionHandler struct {
	sessionRepo   sessionStore
	behaviourRepo behaviourStore
	detector      services.Detector
	store         *services.ImageStore
	statsCache    statsCache
	maxUploadMB   int
}

func NewDetectionHandler(
	sessionRepo sessionStore,
	behaviourRepo behaviourStore,
	detector services.Detector,
	store *services.ImageStore,
	statsCache statsCache,
	maxUploadMB int,
) *DetectionHandler {
	return &DetectionHandler{
		sessionRepo:   sessionRepo,
		behaviourRepo: behaviourRepo,
		detector:      detector,
		store:         store,
		statsCache:    statsCache,
		maxUploadMB:   maxUploadMB,
	}
}

// Detect records one behaviour against an active session: validate the
// session, run the detection stage on the uploaded frame, store the frame,
// then insert the row. The artifact is written before the insert; a failed
// insert removes it again so neither store keeps partial state.
func (h *DetectionHandler) Detect(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found", r))
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

	if !session.Status {
		writeJSON(w, http.StatusBadRequest, errorResp("PRECONDITION_FAILED", "Session is not active", r))
		return
	}

	maxBytes := int64(h.maxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "Image exceeds the upload size limit", r))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	detection, err := h.detector.Detect(r.Context(), file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Detection stage failed", r))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to read image", r))
		return
	}
	storedName, err := h.store.Save(file, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store image", r))
		return
	}

	behaviour := &models.Behaviour{
		SessionID:  session.ID,
		XAxis:      detection.XAxis,
		YAxis:      detection.YAxis,
		WAxis:      detection.WAxis,
		HAxis:      detection.HAxis,
		Confidence: detection.Confidence,
		Image:      storedName,
		Behaviour:  detection.Category,
	}

	if err := h.behaviourRepo.Create(r.Context(), behaviour); err != nil {
		h.store.Remove(storedName)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save behaviour", r))
		return
	}

	h.statsCache.InvalidateSession(r.Context(), session.ID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Behaviour detected and saved successfully",
		"analysis": map[string]interface{}{
			"id":         behaviour.ID,
			"behaviour":  behaviour.Behaviour,
			"x_axis":     behaviour.XAxis,
			"y_axis":     behaviour.YAxis,
			"w_axis":     behaviour.WAxis,
			"h_axis":     behaviour.HAxis,
			"confidence": behaviour.Confidence,
			"image":      behaviour.Image,
		},
	})
}
