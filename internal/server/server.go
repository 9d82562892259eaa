// Package server exposes the coaching engine over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/liftwise/coach/internal/flightrecorder"
	"github.com/liftwise/coach/internal/workout"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	workouts *workout.Service
	log      *slog.Logger
	recorder *flightrecorder.Service
	router   chi.Router
}

// New creates a new Server with all routes configured. A nil recorder
// disables slow request trace capture.
func New(workouts *workout.Service, recorder *flightrecorder.Service, log *slog.Logger) *Server {
	s := &Server{
		workouts: workouts,
		log:      log,
		recorder: recorder,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(Recover(s.log))
	if s.recorder != nil {
		s.router.Use(SlowRequestTraces(s.recorder))
	}

	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/plan", s.handleGeneratePlan)
		r.Post("/sessions", s.handleRecordSession)
		r.Post("/stall", s.handleAnalyzeStall)

		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/match", s.handleMatchExercise)
		r.Get("/exercises/{name}", s.handleExerciseInfo)
		r.Get("/exercises/{name}/substitutes", s.handleSubstitutes)

		r.Get("/loading", s.handleLoading)
	})
}
