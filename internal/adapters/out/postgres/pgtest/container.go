// Package pgtest starts a disposable PostgreSQL for integration tests and
// prepares it with the service schema.
package pgtest

import (
	"context"
	"database/sql"
	"time"

	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/migrations"
	"foodorder/internal/telemetry"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database is a migrated PostgreSQL running in a container.
type Database struct {
	Container *tcpostgres.PostgresContainer
	SQL       *sql.DB
	Gorm      *gorm.DB
	DSN       string
}

// Start runs postgres:15-alpine, applies the embedded migrations and opens GORM
// over an instrumented handle, the same way the service does.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	d := &Database{Container: container}
	if err = d.open(ctx); err != nil {
		_ = d.Terminate(context.Background())
		return nil, err
	}
	return d, nil
}

func (d *Database) open(ctx context.Context) error {
	dsn, err := d.Container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return err
	}
	d.DSN = dsn

	migrationDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	if err = migrations.Up(migrationDB); err != nil {
		return err
	}

	d.SQL, err = telemetry.OpenDB("postgres", dsn)
	if err != nil {
		return err
	}

	d.Gorm, err = postgres.NewGormDB(d.SQL)
	return err
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.Gorm.Exec("TRUNCATE TABLE orders, foods CASCADE").Error
}

// Terminate closes connections and removes the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d.SQL != nil {
		_ = d.SQL.Close()
	}
	return d.Container.Terminate(ctx)
}
