// Package main is the console driver for the user directory.
//
// It wires config → logger → repository → service, creates a few sample
// users, prints them with their statistics, and shows how callers branch on
// the domain error kinds.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/rs/xid"

	"github.com/sakif/userdir/internal/apperror"
	"github.com/sakif/userdir/internal/config"
	"github.com/sakif/userdir/internal/logging"
	"github.com/sakif/userdir/internal/mathutil"
	"github.com/sakif/userdir/internal/model"
	"github.com/sakif/userdir/internal/repository"
	"github.com/sakif/userdir/internal/repository/memory"
	"github.com/sakif/userdir/internal/repository/sqlite"
	"github.com/sakif/userdir/internal/service"
)

const (
	appName = "userdir"
	version = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	// === 1. READ CONFIGURATION ===
	// Defaults, then the optional file, then USERDIR_* env vars.
	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	// Every line from this run carries the same run_id so interleaved output
	// from several runs can be told apart.
	logger := logging.Setup(cfg.Log).With(slog.String("run_id", xid.New().String()))

	// === 3. OPEN THE REPOSITORY ===
	repo, closeRepo, err := openRepository(cfg.Repository)
	if err != nil {
		logger.Error("failed to open repository", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepo()

	// === 4. RUN ===
	if err := run(context.Background(), os.Stdout, repo, logging.NewSlogLogger(logger)); err != nil {
		logger.Error("run failed", slog.String("error", err.Error()))
		closeRepo()
		os.Exit(1)
	}
}

// openRepository builds the configured backend. The returned close func is
// always safe to call.
func openRepository(cfg config.RepositoryConfig) (repository.UserRepository, func() error, error) {
	switch cfg.Backend {
	case "sqlite":
		db, err := sqlite.New(cfg.DSN, cfg.MaxUsers)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case "memory", "":
		return memory.New(cfg.MaxUsers), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown repository backend %q", cfg.Backend)
}

type sampleUser struct {
	name  string
	email string
	age   *uint8
}

var sampleUsers = []sampleUser{
	{"Alice Johnson", "alice@example.com", model.AgeOf(28)},
	{"Bob Smith", "bob@example.com", model.AgeOf(16)},
	{"Charlie Brown", "charlie@example.com", nil},
}

// run is the whole demo, separated from main so it can be tested against
// any writer and repository.
func run(ctx context.Context, out io.Writer, repo repository.UserRepository, logger logging.Logger) error {
	fmt.Fprintf(out, "%s v%s\n", appName, version)
	fmt.Fprintln(out, strings.Repeat("=", 30))

	logging.Info(ctx, logger, "application started")

	svc := service.NewUserService(repo, logger)

	ids := make([]model.UserID, 0, len(sampleUsers))
	for _, u := range sampleUsers {
		id, err := svc.CreateUser(ctx, u.name, u.email, u.age)
		if err != nil {
			return fmt.Errorf("creating %s: %w", u.name, err)
		}
		ids = append(ids, id)
	}
	logging.Info(ctx, logger, fmt.Sprintf("Created %d users", len(ids)))

	fmt.Fprintln(out, "\nCreated Users:")
	for _, id := range ids {
		user, err := svc.GetUser(ctx, id)
		if err != nil {
			logging.Error(ctx, logger, fmt.Sprintf("Error finding user %d: %s", id, describeError(err)))
			continue
		}
		fmt.Fprintf(out, "  %s\n", user)
	}

	stats, err := svc.GetUserStats(ctx)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}
	fmt.Fprintln(out, "\nUser Statistics:")
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %d\n", k, stats[k])
	}

	fmt.Fprintln(out, "\nMath Examples:")
	fmt.Fprintf(out, "Circle area (radius 5.0): %.2f\n", mathutil.CircleArea(5.0))
	fmt.Fprintf(out, "First 10 Fibonacci numbers: %v\n", mathutil.Fibonacci(10))
	numbers := []int{1, 5, 3, 9, 2, 8}
	if maxNum, ok := mathutil.Max(numbers); ok {
		fmt.Fprintf(out, "Maximum number in %v: %d\n", numbers, maxNum)
	}

	// A lookup that is expected to fail.
	if user, err := svc.GetUser(ctx, 999); err != nil {
		fmt.Fprintf(out, "Expected error: %s\n", describeError(err))
	} else {
		fmt.Fprintf(out, "Found user: %s\n", user)
	}

	logging.Info(ctx, logger, "Application completed successfully")
	return nil
}

// describeError renders an error for the console, switching over every
// domain kind. A kind missing from the switch shows up as "unhandled".
func describeError(err error) string {
	kind, ok := apperror.KindOf(err)
	if !ok {
		return fmt.Sprintf("internal error: %v", err)
	}

	switch kind {
	case apperror.KindUserNotFound:
		return err.Error()
	case apperror.KindInvalidEmail:
		return err.Error()
	case apperror.KindRepository:
		return err.Error()
	}
	return fmt.Sprintf("unhandled error kind %s: %v", kind, err)
}
