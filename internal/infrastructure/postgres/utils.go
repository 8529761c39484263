package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE usados por los repositorios.
const (
	sqlUniqueViolation     = "23505"
	sqlForeignKeyViolation = "23503"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classify traduce violaciones de constraint al error de dominio indicado.
// Con onUnique/onForeignKey en nil el error sale envuelto con op.
func classify(err error, op string, onUnique, onForeignKey error) error {
	switch sqlState(err) {
	case sqlUniqueViolation:
		if onUnique != nil {
			return onUnique
		}
	case sqlForeignKeyViolation:
		if onForeignKey != nil {
			return onForeignKey
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullString "" -> NULL para columnas opcionales.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// pageArgs límites de LIMIT/OFFSET para repos llamados sin pasar por dto.PageRequest.
func pageArgs(limit, offset int) (int, int) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return limit, max(offset, 0)
}
