package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/liftwise/coach/internal/sqlite"
)

// SessionRecord is a persisted training session for one exercise.
type SessionRecord struct {
	ID             string    `json:"id"`
	ExerciseName   string    `json:"exercise_name"`
	Date           time.Time `json:"date"`
	TopSetWeightKg float64   `json:"top_set_weight_kg"`
	TopSetReps     int       `json:"top_set_reps"`
	TopSetRPE      *float64  `json:"top_set_rpe,omitempty"`
	TotalSets      int       `json:"total_sets"`
	EstimatedOneRM float64   `json:"estimated_one_rm"`
}

// sqliteSessionRepository persists training sessions.
type sqliteSessionRepository struct {
	baseRepository
}

func newSQLiteSessionRepository(db *sqlite.Database) *sqliteSessionRepository {
	return &sqliteSessionRepository{
		baseRepository: newBaseRepository(db),
	}
}

// Insert stores a new session record. The caller supplies the ID.
func (r *sqliteSessionRepository) Insert(ctx context.Context, rec SessionRecord) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO training_sessions (
			id, exercise_name, session_date, top_set_weight_kg,
			top_set_reps, top_set_rpe, total_sets, estimated_one_rm
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.ExerciseName,
		rec.Date.UTC().Format(timestampFormat),
		rec.TopSetWeightKg,
		rec.TopSetReps,
		rec.TopSetRPE,
		rec.TotalSets,
		rec.EstimatedOneRM,
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", rec.ID, err)
	}
	return nil
}

// ListForExercise returns up to limit sessions for an exercise, newest
// first.
func (r *sqliteSessionRepository) ListForExercise(
	ctx context.Context, exerciseName string, limit int,
) (_ []SessionRecord, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, exercise_name, session_date, top_set_weight_kg,
		       top_set_reps, top_set_rpe, total_sets, estimated_one_rm
		FROM training_sessions
		WHERE exercise_name = ?
		ORDER BY session_date DESC
		LIMIT ?`, exerciseName, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions for %s: %w", exerciseName, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var records []SessionRecord
	for rows.Next() {
		var (
			rec  SessionRecord
			date string
		)
		if err = rows.Scan(&rec.ID, &rec.ExerciseName, &date, &rec.TopSetWeightKg,
			&rec.TopSetReps, &rec.TopSetRPE, &rec.TotalSets, &rec.EstimatedOneRM); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if rec.Date, err = time.Parse(timestampFormat, date); err != nil {
			return nil, fmt.Errorf("parse session date %s: %w", date, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}
