package workout

import (
	"log/slog"

	"github.com/liftwise/coach/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// baseRepository holds what every repository needs.
type baseRepository struct {
	db *sqlite.Database
}

func newBaseRepository(db *sqlite.Database) baseRepository {
	return baseRepository{db: db}
}

// repository aggregates the per-table repositories behind the service.
type repository struct {
	sessions  *sqliteSessionRepository
	exercises *sqliteExerciseRepository
}

// repositoryFactory creates the repositories sharing one database.
type repositoryFactory struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepositoryFactory(db *sqlite.Database, logger *slog.Logger) *repositoryFactory {
	return &repositoryFactory{db: db, logger: logger}
}

func (f *repositoryFactory) newRepository() *repository {
	return &repository{
		sessions:  newSQLiteSessionRepository(f.db),
		exercises: newSQLiteExerciseRepository(f.db),
	}
}
