// Package migrations holds the database schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/sbilibin2017/blog-store/internal/logger"
)

//go:embed sql/*.sql
var files embed.FS

const (
	dir       = "sql"
	tableName = "schema_migrations"
)

// gooseLogger forwards goose output to the application logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	logger.Log.Infof(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logger.Log.Errorf(format, v...)
}

func setup() error {
	goose.SetBaseFS(files)
	goose.SetLogger(gooseLogger{})
	goose.SetTableName(tableName)
	return goose.SetDialect("postgres")
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return fmt.Errorf("failed to configure migrations: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Down rolls back every applied migration.
func Down(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return fmt.Errorf("failed to configure migrations: %w", err)
	}
	if err := goose.ResetContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// Version returns the currently applied schema version.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	if err := setup(); err != nil {
		return 0, fmt.Errorf("failed to configure migrations: %w", err)
	}
	return goose.GetDBVersionContext(ctx, db)
}
