package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/liftwise/coach/internal/config"
	"github.com/liftwise/coach/internal/envstruct"
	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/flightrecorder"
	"github.com/liftwise/coach/internal/logging"
	"github.com/liftwise/coach/internal/server"
	"github.com/liftwise/coach/internal/sqlite"
	"github.com/liftwise/coach/internal/workout"
)

type application struct {
	logger *slog.Logger
}

type appConfig struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"COACH_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"COACH_SQLITE_URL" envDefault:"./coach.sqlite3"`
	// GymConfig is the optional path to a YAML gym profile. Empty means a
	// fully equipped commercial gym.
	GymConfig string `env:"COACH_GYM_CONFIG" envDefault:""`
	// TracesDir is the optional directory for slow request trace captures.
	// Empty disables flight recording.
	TracesDir string `env:"COACH_TRACES_DIR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg appConfig
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	gym, err := config.LoadGymProfile(cfg.GymConfig)
	if err != nil {
		return errors.Wrap(err, "load gym profile", slog.String("path", cfg.GymConfig))
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close db", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	workoutService := workout.NewService(db, logger, gym)
	if err = workoutService.Initialize(ctx); err != nil {
		return errors.Wrap(err, "initialize workout service")
	}

	var recorder *flightrecorder.Service
	if cfg.TracesDir != "" {
		if recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			TracesDirectory: cfg.TracesDir,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
	}

	app := application{logger: logger}
	srv := server.New(workoutService, recorder, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return db.RunOptimizer(ctx)
	})
	g.Go(func() error {
		return app.configureAndStartServer(ctx, cfg.Addr, srv)
	})
	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "serve")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
