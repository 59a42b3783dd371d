package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"filmorate/internal/database"
	"filmorate/internal/domain"
)

// newTestDB opens a fresh in-memory sqlite database with the schema and
// reference data in place. MaxOpenConns(1) keeps every query on the same
// connection, otherwise each pooled connection would see its own empty
// :memory: database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	require.NoError(t, SeedReference(db))
	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testFilm(name string) *domain.Film {
	return &domain.Film{
		Name:        name,
		Description: "desc",
		ReleaseDate: date(2021, 10, 10),
		Duration:    120,
		Mpa:         domain.Rating{ID: 1},
	}
}

func testUser(login string) *domain.User {
	return &domain.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: date(1999, 12, 21),
	}
}

func mustCreateUser(t *testing.T, users UserStorage, login string) *domain.User {
	t.Helper()
	u, err := users.Create(context.Background(), testUser(login))
	require.NoError(t, err)
	return u
}

func mustCreateFilm(t *testing.T, films FilmStorage, name string) *domain.Film {
	t.Helper()
	f, err := films.Create(context.Background(), testFilm(name))
	require.NoError(t, err)
	return f
}
