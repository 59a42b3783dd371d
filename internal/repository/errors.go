package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound — запрошенной записи (фильм, пользователь, рейтинг, жанр,
	// лайк, дружба) нет в хранилище.
	ErrNotFound = errors.New("not_found")
	// ErrConflict is a uniqueness/referential constraint violation reported
	// by the store itself.
	ErrConflict = errors.New("constraint_violation")
	// ErrInternal is raised when a write reported success but the re-read
	// failed, or when the store affected zero rows unexpectedly.
	ErrInternal = errors.New("internal_storage_error")
)

// translate maps store-specific failures onto the repository error taxonomy
// so nothing gorm- or postgres-shaped leaks past this package. A foreign key
// violation means a referenced id does not resolve, which callers treat the
// same as a missing record.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrNotFound, pgErr.ConstraintName)
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		}
	}
	return err
}
