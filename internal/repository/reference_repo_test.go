package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/domain"
)

func TestRatingRepository(t *testing.T) {
	db := newTestDB(t)
	ratings := NewRatingRepository(db)
	ctx := context.Background()

	all, err := ratings.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, domain.Rating{ID: 1, Name: "G"}, all[0])
	assert.Equal(t, domain.Rating{ID: 4, Name: "R"}, all[3])

	one, err := ratings.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "PG-13", one.Name)

	_, err = ratings.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenreRepository(t *testing.T) {
	db := newTestDB(t)
	genres := NewGenreRepository(db)
	ctx := context.Background()

	all, err := genres.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "Комедия", all[0].Name)
	assert.Equal(t, "Боевик", all[5].Name)

	one, err := genres.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Драма", one.Name)

	_, err = genres.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

// повторный сев не дублирует справочники
func TestSeedReferenceIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedReference(db))

	all, err := NewRatingRepository(db).FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
