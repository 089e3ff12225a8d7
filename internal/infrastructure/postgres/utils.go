package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == sqlStateUniqueViolation
}

// isForeignKeyViolation: parent_id apunta a una categoría que ya no existe (borrada en paralelo).
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == sqlStateForeignKeyViolation
}

// nullableID convierte "" en NULL para columnas UUID opcionales.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
