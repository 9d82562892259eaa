package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/exercise"
	"github.com/liftwise/coach/internal/plates"
	"github.com/liftwise/coach/internal/workout"
)

const defaultSubstituteLimit = 3

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req workout.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Entries) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "entries required"})
		return
	}

	response, err := s.workouts.GeneratePlan(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	var rec workout.SessionRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if rec.ExerciseName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise_name required"})
		return
	}
	if rec.TopSetWeightKg < 0 || rec.TopSetReps <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "top set weight and reps must be positive"})
		return
	}

	stored, err := s.workouts.RecordSession(r.Context(), rec)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

type stallRequest struct {
	Exercise     string                   `json:"exercise"`
	Prescription workout.PrescriptionSpec `json:"prescription"`
}

func (s *Server) handleAnalyzeStall(w http.ResponseWriter, r *http.Request) {
	var req stallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise required"})
		return
	}

	result, err := s.workouts.AnalyzeExercise(r.Context(), req.Exercise, req.Prescription)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	library, err := s.workouts.Library(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, library)
}

func (s *Server) handleMatchExercise(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q parameter required"})
		return
	}
	matched, err := s.workouts.MatchExercise(r.Context(), query)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matched)
}

type exerciseInfoResponse struct {
	Exercise        exercise.Exercise `json:"exercise"`
	DescriptionHTML string            `json:"description_html"`
}

func (s *Server) handleExerciseInfo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	info, html, err := s.workouts.ExerciseInfo(r.Context(), name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exerciseInfoResponse{Exercise: info, DescriptionHTML: html})
}

func (s *Server) handleSubstitutes(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	query := r.URL.Query()

	var equipment []exercise.Equipment
	if raw := query.Get("equipment"); raw != "" {
		for _, eq := range strings.Split(raw, ",") {
			equipment = append(equipment, exercise.Equipment(strings.TrimSpace(eq)))
		}
	}
	var painFlags []exercise.PainFlag
	for _, site := range query["pain_site"] {
		painFlags = append(painFlags, exercise.PainFlag{Site: site})
	}
	for _, avoided := range query["avoid"] {
		painFlags = append(painFlags, exercise.PainFlag{Exercise: avoided})
	}
	limit := defaultSubstituteLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	substitutes, err := s.workouts.Substitutes(r.Context(), name, equipment, painFlags, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, substitutes)
}

type loadingResponse struct {
	WeightKg          float64   `json:"weight_kg"`
	NearestLoadableKg float64   `json:"nearest_loadable_kg"`
	PerSide           []float64 `json:"per_side"`
	Instruction       string    `json:"instruction"`
	WarmupsKg         []float64 `json:"warmups_kg,omitempty"`
}

// handleLoading answers "how do I load the bar for this weight" including
// a warmup ramp up to it.
func (s *Server) handleLoading(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("weight")
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil || weight < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight must be a non-negative number"})
		return
	}
	bar := plates.DefaultBarWeightKg
	if rawBar := r.URL.Query().Get("bar"); rawBar != "" {
		if bar, err = strconv.ParseFloat(rawBar, 64); err != nil || bar <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bar must be a positive number"})
			return
		}
	}

	nearest := plates.NearestLoadable(weight, bar, plates.StandardPlatesKg)
	writeJSON(w, http.StatusOK, loadingResponse{
		WeightKg:          weight,
		NearestLoadableKg: nearest,
		PerSide:           plates.PerSide(weight, bar, plates.StandardPlatesKg),
		Instruction:       plates.LoadingInstruction(weight, bar, plates.StandardPlatesKg),
		WarmupsKg:         plates.WarmupWeights(weight, bar),
	})
}

// respondError maps service errors to HTTP statuses. Unknown exercises
// are the caller's problem; everything else is ours.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, workout.ErrUnknownExercise) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	s.log.LogAttrs(r.Context(), slog.LevelError, "handler error", errors.SlogError(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
