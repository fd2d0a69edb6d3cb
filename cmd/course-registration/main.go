// main is the entry point of the course registration program.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file, or environment with defaults)
//  2. Initialise the logger
//  3. Open the roster store and load the saved roster
//  4. Register the menu choices
//  5. Run the menu loop in a separate goroutine
//  6. Block until the loop ends or an OS signal (Ctrl+C / kill) arrives
//
// RUNNING:
//
//	go run ./cmd/course-registration --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/course-registration
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/course-registration/internal/config"
	"github.com/aanand-mishra/course-registration/internal/console"
	"github.com/aanand-mishra/course-registration/internal/console/handlers/student"
	"github.com/aanand-mishra/course-registration/internal/roster"
	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/storage/jsonfile"
	"github.com/aanand-mishra/course-registration/internal/storage/sqlite"
	"github.com/aanand-mishra/course-registration/internal/utils/response"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs go to stderr: stdout belongs to the menu.
	log := setupLogger(cfg.Env, os.Stderr)
	slog.SetDefault(log)

	log.Info("starting course-registration",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path),
	)

	// ── 3. Initialise Storage and load the roster ─────────────────────────
	store, closeStore, err := newStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	// A failed load is reported, never fatal: the session starts with
	// whatever the store could return (usually nothing).
	students := roster.New()
	if err := students.Load(store); err != nil {
		log.Warn("roster not loaded", slog.String("error", err.Error()))
		response.LoadError(os.Stdout, err)
	}
	log.Info("roster loaded", slog.Int("students", students.Len()))

	// ── 4. Register Menu Choices ──────────────────────────────────────────
	router := console.NewRouter("Course Registration Program")
	router.HandleFunc("1", "Register a Student for a Course.", student.New(students))
	router.HandleFunc("2", "Show current data.", student.GetList(students))
	router.HandleFunc("3", "Save data to a file.", student.Save(store, students))
	router.HandleExit("4", "Exit the program.")

	// ── 5. Run the Menu Loop in a Goroutine ───────────────────────────────
	// The loop blocks on stdin, so it runs beside the signal wait below.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	finished := make(chan error, 1)
	go func() {
		finished <- console.New(router, os.Stdin, os.Stdout, log).Run(ctx)
	}()

	// ── 6. Wait for the Loop or a Shutdown Signal ─────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-finished:
		if err != nil {
			log.Error("menu loop failed", slog.String("error", err.Error()))
			closeStore()
			os.Exit(1)
		}
	case sig := <-done:
		// Unsaved registrations are lost, as with the exit choice.
		log.Info("signal received, stopping", slog.String("signal", sig.String()))
		cancel()
	}

	log.Info("stopped")
}

// newStorage picks the roster backend named in cfg.Storage.Driver. The
// returned func releases whatever the backend holds open.
func newStorage(cfg *config.Config) (storage.Storage, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.DriverJSON:
		return jsonfile.New(cfg), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
}
