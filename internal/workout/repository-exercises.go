package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/liftwise/coach/internal/exercise"
	"github.com/liftwise/coach/internal/sqlite"
)

// sqliteExerciseRepository persists the exercise catalog.
type sqliteExerciseRepository struct {
	baseRepository
}

func newSQLiteExerciseRepository(db *sqlite.Database) *sqliteExerciseRepository {
	return &sqliteExerciseRepository{
		baseRepository: newBaseRepository(db),
	}
}

// Sync upserts the given exercises with their muscle and equipment rows.
// The catalog is code-defined, so rows for an exercise are replaced
// wholesale rather than diffed.
func (r *sqliteExerciseRepository) Sync(ctx context.Context, exercises []exercise.Exercise) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin exercise sync: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	for _, e := range exercises {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO exercises (name, movement_pattern, description_markdown)
			VALUES (?, ?, ?)
			ON CONFLICT (name) DO UPDATE SET
				movement_pattern = excluded.movement_pattern,
				description_markdown = excluded.description_markdown`,
			e.Name, string(e.Pattern), e.DescriptionMarkdown); err != nil {
			return fmt.Errorf("upsert exercise %s: %w", e.Name, err)
		}

		if _, err = tx.ExecContext(ctx,
			`DELETE FROM exercise_muscles WHERE exercise_name = ?`, e.Name); err != nil {
			return fmt.Errorf("clear muscles for %s: %w", e.Name, err)
		}
		for _, m := range e.PrimaryMuscles {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO exercise_muscles (exercise_name, muscle, role) VALUES (?, ?, 'primary')`,
				e.Name, string(m)); err != nil {
				return fmt.Errorf("insert primary muscle for %s: %w", e.Name, err)
			}
		}
		for _, m := range e.SecondaryMuscles {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO exercise_muscles (exercise_name, muscle, role) VALUES (?, ?, 'secondary')`,
				e.Name, string(m)); err != nil {
				return fmt.Errorf("insert secondary muscle for %s: %w", e.Name, err)
			}
		}

		if _, err = tx.ExecContext(ctx,
			`DELETE FROM exercise_equipment WHERE exercise_name = ?`, e.Name); err != nil {
			return fmt.Errorf("clear equipment for %s: %w", e.Name, err)
		}
		for _, eq := range e.EquipmentRequired {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO exercise_equipment (exercise_name, equipment) VALUES (?, ?)`,
				e.Name, string(eq)); err != nil {
				return fmt.Errorf("insert equipment for %s: %w", e.Name, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit exercise sync: %w", err)
	}
	return nil
}

// Get retrieves a single exercise by exact name.
func (r *sqliteExerciseRepository) Get(ctx context.Context, name string) (exercise.Exercise, error) {
	var (
		e       exercise.Exercise
		pattern string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT name, movement_pattern, description_markdown
		FROM exercises
		WHERE name = ?`, name).Scan(&e.Name, &pattern, &e.DescriptionMarkdown)
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("query exercise %s: %w", name, err)
	}
	e.Pattern = exercise.MovementPattern(pattern)

	if err = r.fetchDetails(ctx, &e); err != nil {
		return exercise.Exercise{}, fmt.Errorf("fetch details for %s: %w", name, err)
	}
	return e, nil
}

// List returns the whole catalog ordered by name.
func (r *sqliteExerciseRepository) List(ctx context.Context) (_ []exercise.Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT name, movement_pattern, description_markdown
		FROM exercises
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []exercise.Exercise
	for rows.Next() {
		var (
			e       exercise.Exercise
			pattern string
		)
		if err = rows.Scan(&e.Name, &pattern, &e.DescriptionMarkdown); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		e.Pattern = exercise.MovementPattern(pattern)
		exercises = append(exercises, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range exercises {
		if err = r.fetchDetails(ctx, &exercises[i]); err != nil {
			return nil, fmt.Errorf("fetch details for %s: %w", exercises[i].Name, err)
		}
	}
	return exercises, nil
}

// fetchDetails loads the muscle and equipment rows into the exercise.
func (r *sqliteExerciseRepository) fetchDetails(ctx context.Context, e *exercise.Exercise) error {
	primary, secondary, err := r.fetchMuscles(ctx, e.Name)
	if err != nil {
		return err
	}
	e.PrimaryMuscles = primary
	e.SecondaryMuscles = secondary

	equipment, err := r.fetchEquipment(ctx, e.Name)
	if err != nil {
		return err
	}
	e.EquipmentRequired = equipment
	return nil
}

func (r *sqliteExerciseRepository) fetchMuscles(
	ctx context.Context, name string,
) (primary, secondary []exercise.MuscleGroup, err error) {
	var rows *sql.Rows
	rows, err = r.db.ReadOnly.QueryContext(ctx, `
		SELECT muscle, role
		FROM exercise_muscles
		WHERE exercise_name = ?
		ORDER BY muscle`, name)
	if err != nil {
		return nil, nil, fmt.Errorf("query muscles: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	for rows.Next() {
		var muscle, role string
		if err = rows.Scan(&muscle, &role); err != nil {
			return nil, nil, fmt.Errorf("scan muscle: %w", err)
		}
		if role == "primary" {
			primary = append(primary, exercise.MuscleGroup(muscle))
		} else {
			secondary = append(secondary, exercise.MuscleGroup(muscle))
		}
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows error: %w", err)
	}
	return primary, secondary, nil
}

func (r *sqliteExerciseRepository) fetchEquipment(
	ctx context.Context, name string,
) (_ []exercise.Equipment, err error) {
	var rows *sql.Rows
	rows, err = r.db.ReadOnly.QueryContext(ctx, `
		SELECT equipment
		FROM exercise_equipment
		WHERE exercise_name = ?
		ORDER BY equipment`, name)
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var equipment []exercise.Equipment
	for rows.Next() {
		var eq string
		if err = rows.Scan(&eq); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		equipment = append(equipment, exercise.Equipment(eq))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return equipment, nil
}
