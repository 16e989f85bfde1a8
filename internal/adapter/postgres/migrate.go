package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/hrwallet-backend/migrations"
)

// MigrationResult summarizes one applied migration.
type MigrationResult struct {
	Version  int64
	Source   string
	Duration string
}

// Migrate applies all pending embedded migrations to the database at dsn.
// goose needs a *sql.DB, so a short-lived database/sql handle is opened on the
// pgx stdlib driver.
func Migrate(ctx context.Context, dsn string) ([]MigrationResult, error) {
	provider, closeDB, err := newProvider(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer closeDB()

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("goose up: %w", err)
	}

	out := make([]MigrationResult, 0, len(results))
	for _, r := range results {
		out = append(out, MigrationResult{
			Version:  r.Source.Version,
			Source:   r.Source.Path,
			Duration: r.Duration.String(),
		})
	}
	return out, nil
}

// MigrationVersion returns the currently applied schema version.
func MigrationVersion(ctx context.Context, dsn string) (int64, error) {
	provider, closeDB, err := newProvider(ctx, dsn)
	if err != nil {
		return 0, err
	}
	defer closeDB()

	v, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}
	return v, nil
}

func newProvider(ctx context.Context, dsn string) (*goose.Provider, func(), error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}

	// NewProvider handles $$-delimited bodies correctly, unlike the legacy
	// goose.Up which splits on semicolons.
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("goose new provider: %w", err)
	}

	return provider, func() { db.Close() }, nil
}
