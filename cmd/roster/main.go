// main is the entry point of the roster application.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file and/or environment)
//  2. Initialise the logger
//  3. Pick the storage backend (text, yaml or sqlite)
//  4. Build the roster and, unless disabled, load the saved records
//  5. Run the interactive menu on stdin/stdout until the user exits
//  6. Optionally save the roster on the way out
//
// RUNNING:
//
//	go run ./cmd/roster --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/roster
//
// or with no config at all (students.txt in the current directory):
//
//	go run ./cmd/roster
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aanand-mishra/roster/internal/config"
	"github.com/aanand-mishra/roster/internal/roster"
	"github.com/aanand-mishra/roster/internal/shell"
	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/storage/flatfile"
	"github.com/aanand-mishra/roster/internal/storage/sqlite"
	"github.com/aanand-mishra/roster/internal/storage/yamlfile"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs never go to stdout: that is where the menu is drawn.
	logOut, closeLog, err := openLogOutput(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %s\n", err)
		os.Exit(1)
	}
	defer closeLog()

	log := setupLogger(cfg.Env, logOut)
	slog.SetDefault(log)

	log.Info("starting roster",
		slog.String("env", cfg.Env),
		slog.String("backend", cfg.Storage.Backend),
		slog.String("path", cfg.Storage.Path),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// The roster only sees the storage.Storage interface; which file
	// format sits behind it is decided here and nowhere else.
	backend, err := newStorage(cfg.Storage)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 4. Build the Roster ───────────────────────────────────────────────
	store := roster.New(backend)

	if !cfg.Shell.SkipLoad {
		count, found, err := store.Load()
		switch {
		case err != nil:
			// Not fatal: the user can still work and save a new file.
			log.Error("initial load failed", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stdout, "Could not load %s: %s\n", cfg.Storage.Path, err)
		case !found:
			log.Info("no saved roster yet", slog.String("path", cfg.Storage.Path))
		default:
			log.Info("roster loaded", slog.Int("count", count))
			fmt.Fprintf(os.Stdout, "Loaded %d students from %s.\n", count, cfg.Storage.Path)
		}
	}

	// ── 5. Run the Menu ───────────────────────────────────────────────────
	sh := shell.New(store, os.Stdin, os.Stdout,
		shell.WithExportPath(cfg.Export.Path),
		shell.WithLogger(log),
	)

	runErr := sh.Run()
	if runErr != nil {
		log.Error("shell stopped", slog.String("error", runErr.Error()))
	}

	// ── 6. Save on Exit ───────────────────────────────────────────────────
	if cfg.Shell.SaveOnExit {
		if err := store.Save(); err != nil {
			log.Error("save on exit failed", slog.String("error", err.Error()))
			closeLog()
			os.Exit(1)
		}
		log.Info("roster saved on exit", slog.Int("count", store.Len()))
	}

	log.Info("roster stopped")

	if runErr != nil {
		closeLog()
		os.Exit(1)
	}
}

// newStorage returns the backend named in the config.
func newStorage(cfg config.Storage) (storage.Storage, error) {
	switch cfg.Backend {
	case config.BackendText:
		return flatfile.New(cfg.Path), nil
	case config.BackendYAML:
		return yamlfile.New(cfg.Path), nil
	case config.BackendSQLite:
		return sqlite.New(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// openLogOutput returns the log file (appending) or stderr when path is
// empty, plus a close function that is safe to call more than once.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	closed := false
	return f, func() {
		if !closed {
			closed = true
			f.Close()
		}
	}, nil
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
