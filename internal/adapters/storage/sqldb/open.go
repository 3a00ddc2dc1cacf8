package sqldb

import (
	"context"
	"database/sql"

	"house-catalog/internal/adapters/storage/postgres"
	"house-catalog/internal/adapters/storage/sqlite"
)

// Open elige el driver según el DATABASE_URL: postgres:// usa pgx,
// cualquier otra cosa es la ruta de la base embebida.
func Open(ctx context.Context, dsn string) (*sql.DB, Dialect, error) {
	if postgres.IsURL(dsn) {
		db, err := postgres.Open(ctx, dsn)
		return db, Postgres, err
	}
	db, err := sqlite.Open(ctx, dsn)
	return db, SQLite, err
}
