package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/exercise"
	"github.com/liftwise/coach/internal/sqlite"
	"github.com/liftwise/coach/internal/strength"
)

// ErrUnknownExercise is returned when a name cannot be resolved against
// the exercise catalog.
var ErrUnknownExercise = errors.NewSentinel("unknown exercise")

// historyDepth is how many recent sessions inform progression and stall
// analysis per exercise.
const historyDepth = 12

// Service handles the business logic for workout planning and tracking.
type Service struct {
	repo    *repository
	logger  *slog.Logger
	planner *planner
	gym     GymProfile
}

// NewService creates a new workout service for one gym profile.
func NewService(db *sqlite.Database, logger *slog.Logger, gym GymProfile) *Service {
	factory := newRepositoryFactory(db, logger)
	return &Service{
		repo:    factory.newRepository(),
		logger:  logger,
		planner: newPlanner(gym),
		gym:     gym,
	}
}

// Initialize seeds the exercise catalog from the built-in library. It is
// idempotent and must run before the service handles requests.
func (s *Service) Initialize(ctx context.Context) error {
	library := exercise.DefaultLibrary()
	if err := s.repo.exercises.Sync(ctx, library); err != nil {
		return fmt.Errorf("sync exercise catalog: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "exercise catalog synced",
		slog.Int("exercises", len(library)))
	return nil
}

// Library returns the full exercise catalog.
func (s *Service) Library(ctx context.Context) ([]exercise.Exercise, error) {
	library, err := s.repo.exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return library, nil
}

// MatchExercise resolves a free-form name against the catalog.
func (s *Service) MatchExercise(ctx context.Context, query string) (exercise.Exercise, error) {
	library, err := s.Library(ctx)
	if err != nil {
		return exercise.Exercise{}, err
	}
	matched := exercise.FindBestMatch(query, library)
	if matched == nil {
		return exercise.Exercise{}, fmt.Errorf("match %q: %w", query, ErrUnknownExercise)
	}
	return *matched, nil
}

// ExerciseInfo returns an exercise with its description rendered to HTML.
func (s *Service) ExerciseInfo(ctx context.Context, name string) (exercise.Exercise, string, error) {
	matched, err := s.MatchExercise(ctx, name)
	if err != nil {
		return exercise.Exercise{}, "", err
	}
	html, err := exercise.DescriptionHTML(matched)
	if err != nil {
		return exercise.Exercise{}, "", fmt.Errorf("render description for %s: %w", matched.Name, err)
	}
	return matched, html, nil
}

// Substitutes ranks replacements for an exercise under the given
// constraints. Empty equipment defaults to the gym profile.
func (s *Service) Substitutes(
	ctx context.Context,
	name string,
	availableEquipment []exercise.Equipment,
	painFlags []exercise.PainFlag,
	limit int,
) ([]exercise.ScoredSubstitute, error) {
	matched, err := s.MatchExercise(ctx, name)
	if err != nil {
		return nil, err
	}
	library, err := s.Library(ctx)
	if err != nil {
		return nil, err
	}
	if len(availableEquipment) == 0 {
		availableEquipment = s.gym.Equipment
	}
	return exercise.FindSubstitutes(matched.Name, availableEquipment, library, painFlags, limit), nil
}

// RecordSession stores a logged session, resolving the exercise name and
// filling in the ID and estimated 1RM.
func (s *Service) RecordSession(ctx context.Context, rec SessionRecord) (SessionRecord, error) {
	matched, err := s.MatchExercise(ctx, rec.ExerciseName)
	if err != nil {
		return SessionRecord{}, err
	}
	rec.ExerciseName = matched.Name

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}
	rec.EstimatedOneRM = strength.Estimate(rec.TopSetWeightKg, rec.TopSetReps)

	if err = s.repo.sessions.Insert(ctx, rec); err != nil {
		return SessionRecord{}, fmt.Errorf("record session: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "session recorded",
		slog.String("exercise", rec.ExerciseName),
		slog.Float64("e1rm", rec.EstimatedOneRM))
	return rec, nil
}

// PlanRequestEntry is one requested exercise in a plan, by free-form name.
type PlanRequestEntry struct {
	Exercise     string           `json:"exercise"`
	Prescription PrescriptionSpec `json:"prescription"`
	Optional     bool             `json:"optional"`
}

// PlanRequest asks for a daily plan under today's constraints.
type PlanRequest struct {
	Entries   []PlanRequestEntry   `json:"entries"`
	Readiness ReadinessState       `json:"readiness"`
	Equipment []exercise.Equipment `json:"equipment,omitempty"`
	PainFlags []exercise.PainFlag  `json:"pain_flags,omitempty"`
}

// PlanResponse is the generated plan plus any exercise swaps made to
// satisfy equipment or pain constraints.
type PlanResponse struct {
	Plan          GeneratedPlan           `json:"plan"`
	Substitutions []exercise.Substitution `json:"substitutions,omitempty"`
}

// GeneratePlan resolves the requested exercises, substitutes the ones the
// constraints rule out, and runs the progression engine over stored
// history.
func (s *Service) GeneratePlan(ctx context.Context, req PlanRequest) (PlanResponse, error) {
	library, err := s.Library(ctx)
	if err != nil {
		return PlanResponse{}, err
	}
	availableEquipment := req.Equipment
	if len(availableEquipment) == 0 {
		availableEquipment = s.gym.Equipment
	}

	var (
		response PlanResponse
		template Template
		notes    []string
	)
	for _, entry := range req.Entries {
		matched := exercise.FindBestMatch(entry.Exercise, library)
		if matched == nil {
			return PlanResponse{}, fmt.Errorf("plan entry %q: %w", entry.Exercise, ErrUnknownExercise)
		}
		resolved := *matched

		if reason, needed := exercise.NeedsSubstitution(resolved, availableEquipment, req.PainFlags); needed {
			if substitute := exercise.BestSubstitute(resolved.Name, availableEquipment, library, req.PainFlags); substitute != nil {
				response.Substitutions = append(response.Substitutions, exercise.Substitution{
					Original:   resolved,
					Substitute: *substitute,
					Reason:     reason,
				})
				resolved = *substitute
			} else {
				notes = append(notes, fmt.Sprintf("No substitute available for %s", resolved.Name))
			}
		}

		template.Entries = append(template.Entries, TemplateEntry{
			Exercise:     resolved,
			Prescription: entry.Prescription,
			Optional:     entry.Optional,
		})
	}

	history, err := s.loadHistory(ctx, template)
	if err != nil {
		return PlanResponse{}, err
	}

	response.Plan = s.planner.GeneratePlan(template, history, req.Readiness)
	response.Plan.Adjustments = append(response.Plan.Adjustments, notes...)
	return response, nil
}

// AnalyzeExercise runs stall detection over the stored history of one
// exercise.
func (s *Service) AnalyzeExercise(ctx context.Context, name string, rx PrescriptionSpec) (StallResult, error) {
	matched, err := s.MatchExercise(ctx, name)
	if err != nil {
		return StallResult{}, err
	}
	records, err := s.repo.sessions.ListForExercise(ctx, matched.Name, historyDepth)
	if err != nil {
		return StallResult{}, fmt.Errorf("load history for %s: %w", matched.Name, err)
	}
	return AnalyzeStall(matched.Name, historyEntries(records), rx), nil
}

// History returns recent session snapshots for the given exercises,
// newest first.
func (s *Service) History(ctx context.Context, exerciseNames []string) (History, error) {
	history := History{}
	for _, name := range exerciseNames {
		records, err := s.repo.sessions.ListForExercise(ctx, name, historyDepth)
		if err != nil {
			return nil, fmt.Errorf("load history for %s: %w", name, err)
		}
		history[name] = historyEntries(records)
	}
	return history, nil
}

// loadHistory pulls the session history behind every template entry.
func (s *Service) loadHistory(ctx context.Context, template Template) (History, error) {
	names := make([]string, 0, len(template.Entries))
	for _, entry := range template.Entries {
		names = append(names, entry.Exercise.Name)
	}
	return s.History(ctx, names)
}

func historyEntries(records []SessionRecord) []SessionHistoryEntry {
	entries := make([]SessionHistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, SessionHistoryEntry{
			Date:           rec.Date,
			TopSetWeightKg: rec.TopSetWeightKg,
			TopSetReps:     rec.TopSetReps,
			TopSetRPE:      rec.TopSetRPE,
			TotalSets:      rec.TotalSets,
			EstimatedOneRM: rec.EstimatedOneRM,
		})
	}
	return entries
}
