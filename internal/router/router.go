package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"classwatch-backend/internal/handlers"
	"classwatch-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	classroomHandler *handlers.ClassroomHandler,
	sessionHandler *handlers.SessionHandler,
	detectionHandler *handlers.DetectionHandler,
	statsHandler *handlers.StatsHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Auth Routes (public) ────
	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/logout", authHandler.Logout)
		})
	})

	// ──── Classroom Routes ────
	r.Route("/classrooms", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Use(middleware.RequireTeacher)
		r.Post("/", classroomHandler.Create)
		r.Get("/", classroomHandler.List)
		r.Get("/{id}", classroomHandler.Get)
	})

	// ──── Session Routes ────
	r.Route("/session", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Use(middleware.RequireTeacher)

		r.Get("/create/{classroomId}", sessionHandler.Latest)
		r.Post("/create/{classroomId}", sessionHandler.StartOrStop)

		r.Post("/detect/{sessionId}", detectionHandler.Detect)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/session/{sessionId}", statsHandler.SessionStats)
			r.Get("/classroom/{classroomId}/sessions", statsHandler.ClassroomStats)
			r.Get("/classroom/{classroomId}/session/{sessionId}", statsHandler.ClassroomSessionStats)
		})
	})

	return r
}
