package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"classwatch-backend/internal/models"
	"classwatch-backend/internal/services"
)

// ─── JSON Helper Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]interface{}{
		"message":    "Session created successfully",
		"session_id": "test-uuid",
	})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "Session created successfully" {
		t.Errorf("Expected creation message, got %v", result["message"])
	}
}

func TestErrorResp_CarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/session/stats/session/abc", nil)
	req.Header.Set("X-Request-ID", "req-42")

	resp := errorResp("NOT_FOUND", "Session not found", req)

	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected code NOT_FOUND, got %q", resp.Error.Code)
	}
	if resp.Error.Message != "Session not found" {
		t.Errorf("Expected message 'Session not found', got %q", resp.Error.Message)
	}
	if resp.Error.RequestID != "req-42" {
		t.Errorf("Expected request id 'req-42', got %q", resp.Error.RequestID)
	}
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		code     string
	}{
		{"not found", &services.NotFoundError{Message: "Session not found"}, http.StatusNotFound, "NOT_FOUND"},
		{"precondition", &services.PreconditionError{Message: "Session is not active"}, http.StatusBadRequest, "PRECONDITION_FAILED"},
		{"validation", &services.ValidationError{Fields: map[string]string{"email": "bad"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "taken"}, http.StatusConflict, "CONFLICT"},
		{"unauthorized", &services.UnauthorizedError{Message: "nope"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", io.ErrUnexpectedEOF, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.expected {
				t.Errorf("Expected status %d, got %d", tc.expected, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.code {
				t.Errorf("Expected code %q, got %q", tc.code, resp.Error.Code)
			}
		})
	}
}

// ─── Detection Request Tests ───

func TestDetectRequest_MultipartImageField(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "frame.jpg")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	fw.Write([]byte("fake image bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/session/detect/"+uuid.New().String(), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	file, header, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("Expected image field to parse: %v", err)
	}
	defer file.Close()

	if header.Filename != "frame.jpg" {
		t.Errorf("Expected filename 'frame.jpg', got %q", header.Filename)
	}

	content, _ := io.ReadAll(file)
	if string(content) != "fake image bytes" {
		t.Errorf("Unexpected file content: %q", content)
	}
}

func TestDetectRequest_MissingImageField(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("note", "no file here")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/session/detect/"+uuid.New().String(), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if _, _, err := req.FormFile("image"); err == nil {
		t.Error("Expected error for missing image field")
	}
}

// ─── Stats Response Shape Tests ───

func TestSessionStatsResponse_ZeroFilled(t *testing.T) {
	stats := &models.SessionStats{
		SessionID: uuid.New(),
		ClassID:   uuid.New(),
		Behaviors: models.ZeroFillCounts(nil),
	}

	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, map[string]interface{}{"message": stats})

	var result struct {
		Message struct {
			Behaviors map[string]int `json:"behaviors"`
		} `json:"message"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	for _, c := range models.BehaviourCategories {
		if n, ok := result.Message.Behaviors[c]; !ok || n != 0 {
			t.Errorf("Expected %q to be present with 0, got %d (present: %v)", c, n, ok)
		}
	}
}

func TestClassroomStatsResponse_TotalMatchesBreakdown(t *testing.T) {
	counts := map[string]int{"hand-raising": 2, "writing": 1}
	total := 0
	for _, n := range counts {
		total += n
	}

	stats := models.ClassroomStats{
		ClassID:        uuid.New(),
		SessionCount:   2,
		SessionIDs:     []uuid.UUID{uuid.New(), uuid.New()},
		TotalBehaviors: total,
		Behaviors:      models.ZeroFillCounts(counts),
	}

	sum := 0
	for _, n := range stats.Behaviors {
		sum += n
	}
	if sum != stats.TotalBehaviors {
		t.Errorf("Expected breakdown sum %d to equal total %d", sum, stats.TotalBehaviors)
	}
	if stats.Behaviors["reading"] != 0 {
		t.Errorf("Expected reading zero-filled, got %d", stats.Behaviors["reading"])
	}
}
