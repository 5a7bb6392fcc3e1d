package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"classwatch-backend/internal/middleware"
	"classwatch-backend/internal/models"
)

type ClassroomHandler struct {
	classroomRepo classroomStore
}

func NewClassroomHandler(classroomRepo classroomStore) *ClassroomHandler {
	return &ClassroomHandler{classroomRepo: classroomRepo}
}

func (h *ClassroomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClassroomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Classroom name is required", r))
		return
	}

	classroom := &models.Classroom{
		Name:      req.Name,
		TeacherID: middleware.GetTeacherID(r.Context()),
	}

	if err := h.classroomRepo.Create(r.Context(), classroom); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create classroom", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Classroom created successfully",
		"classroom": classroom,
	})
}

func (h *ClassroomHandler) List(w http.ResponseWriter, r *http.Request) {
	teacherID := middleware.GetTeacherID(r.Context())

	classrooms, err := h.classroomRepo.ListByTeacher(r.Context(), teacherID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list classrooms", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"classrooms": classrooms})
}

func (h *ClassroomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid classroom ID", r))
		return
	}

	classroom, err := h.classroomRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Classroom not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to look up classroom", r))
		return
	}

	if classroom.TeacherID != middleware.GetTeacherID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	writeJSON(w, http.StatusOK, classroom)
}
