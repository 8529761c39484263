package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationDirection sentido de las migraciones (up / down).
type MigrationDirection = migrate.MigrationDirection

const (
	MigrateUp   = migrate.Up
	MigrateDown = migrate.Down
)

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// Migrate aplica las migraciones embebidas sobre el pool. max limita cuántas se aplican
// (0 = todas). Devuelve el número de migraciones ejecutadas.
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir MigrationDirection, max int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrateDB(db, dir, max)
}

func migrateDB(db *sql.DB, dir MigrationDirection, max int) (int, error) {
	ms := migrate.MigrationSet{TableName: "schema_migrations"}
	n, err := ms.ExecMax(db, "postgres", migrationSource(), dir, max)
	if err != nil {
		return n, fmt.Errorf("db migrations have failed: %w", err)
	}
	return n, nil
}

// PendingMigrations lista los ids de migraciones aún no aplicadas.
func PendingMigrations(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	ms := migrate.MigrationSet{TableName: "schema_migrations"}
	planned, _, err := ms.PlanMigration(db, "postgres", migrationSource(), migrate.Up, 0)
	if err != nil {
		return nil, fmt.Errorf("plan migrations: %w", err)
	}
	ids := make([]string, 0, len(planned))
	for _, m := range planned {
		ids = append(ids, m.Id)
	}
	return ids, nil
}
