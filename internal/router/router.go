package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"receitas-backend/internal/handlers"
	"receitas-backend/internal/middleware"
)

func New(
	videoHandler *handlers.VideoHandler,
	imageHandler *handlers.ImageHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Processing rate limiter (10 req/min per IP); each request can hold the
	// worker for minutes, so the limit is deliberately low.
	processLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/process-video", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(processLimiter.Middleware)
			r.Post("/", videoHandler.Process)
		})
		r.Get("/", videoHandler.Status)
	})

	r.Route("/recipe-image", func(r chi.Router) {
		r.Post("/", imageHandler.Fetch)
		r.Get("/", imageHandler.Status)
	})

	return r
}
