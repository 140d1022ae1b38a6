package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"slices"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Commands lists the goose commands Run accepts.
var Commands = []string{"up", "up-by-one", "down", "reset", "status", "version", "redo"}

// ValidateCommand reports whether command is one Run accepts.
func ValidateCommand(command string) error {
	if !slices.Contains(Commands, command) {
		return fmt.Errorf("unknown migrate command %q (want one of %v)", command, Commands)
	}
	return nil
}

// Run executes a goose command with migrations read from files against dbURL.
func Run(ctx context.Context, dbURL string, files fs.FS, command string, args ...string) error {
	if err := ValidateCommand(command); err != nil {
		return err
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("failed to run migrations %s: %w", command, err)
	}
	return nil
}

// RunMigrations applies all pending migrations.
func RunMigrations(ctx context.Context, dbURL string, files fs.FS) error {
	return Run(ctx, dbURL, files, "up")
}
