// main is the entry point of the student roster API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus .env / env overrides)
//  2. Initialise the logger
//  3. Open the SQLite database holding the roster blob
//  4. Load the roster, falling back to the seed records
//  5. Build the NIM codec, validator, normalizer and import reconciler
//  6. Register all HTTP routes and start the server in a goroutine
//  7. Block until an OS signal arrives, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/students-roster/internal/config"
	"github.com/aanand-mishra/students-roster/internal/http/handlers/lookup"
	"github.com/aanand-mishra/students-roster/internal/http/handlers/student"
	"github.com/aanand-mishra/students-roster/internal/importer"
	"github.com/aanand-mishra/students-roster/internal/nim"
	"github.com/aanand-mishra/students-roster/internal/normalize"
	"github.com/aanand-mishra/students-roster/internal/storage/sqlite"
	"github.com/aanand-mishra/students-roster/internal/store"
	"github.com/aanand-mishra/students-roster/internal/types"
	"github.com/aanand-mishra/students-roster/internal/validation"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Handlers log through the package-level slog functions, so the
	// configured logger also becomes the default.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	db, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath),
		slog.String("key", cfg.StorageKey))

	// ── 4. Load the Roster ────────────────────────────────────────────────
	var seed []types.Student
	if cfg.Roster.SeedOnEmpty {
		seed = store.DefaultSeed()
	}

	roster := store.New(db, log)
	if err := roster.Load(seed); err != nil {
		log.Error("failed to load roster", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 5. Domain Services ────────────────────────────────────────────────
	codec := nim.New(cfg.Roster.CohortPivot)
	normalizer := normalize.New(codec)
	validator := validation.New(codec)
	reconciler := importer.New(roster, normalizer, validator, importer.Options{
		MinCohortYear: cfg.Roster.MinCohortYear,
		MaxCohortYear: cfg.Roster.MaxCohortYear,
	}, log)

	// ── 6. Register HTTP Routes ───────────────────────────────────────────
	// Route table:
	//   POST   /api/students              → create a student
	//   GET    /api/students              → search / filter / sort
	//   DELETE /api/students              → delete every student
	//   POST   /api/students/bulk-delete  → delete several students
	//   POST   /api/students/import       → bulk import CSV / JSON / YAML
	//   GET    /api/students/{id}         → get one student
	//   PUT    /api/students/{id}         → update a student
	//   DELETE /api/students/{id}         → delete a student
	//   GET    /api/cohorts               → cohort years on the roster
	//   GET    /api/nim/{nim}             → validate and decode a NIM
	//   GET    /api/departments           → department table
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.New(roster, validator, normalizer))
	router.HandleFunc("GET /api/students", student.GetList(roster))
	router.HandleFunc("DELETE /api/students", student.DeleteAll(roster))
	router.HandleFunc("POST /api/students/bulk-delete", student.DeleteMany(roster))
	router.HandleFunc("POST /api/students/import", student.Import(reconciler, cfg.Roster.ImportErrorLimit))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(roster))
	router.HandleFunc("PUT /api/students/{id}", student.Update(roster, validator, normalizer))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(roster))
	router.HandleFunc("GET /api/cohorts", student.Cohorts(roster))
	router.HandleFunc("GET /api/nim/{nim}", lookup.NIM(codec))
	router.HandleFunc("GET /api/departments", lookup.Departments())

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		// Imports of large files take longer to upload than a form post.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// In-flight requests get 5 seconds to finish. Every mutation has
	// already been saved by the store, so there is nothing to flush.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
// Staging: JSON output at DEBUG level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
