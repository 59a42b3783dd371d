package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/domain"
)

func TestFilmRepository_CreateAssemblesAggregate(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmRepository(db)
	ctx := context.Background()

	film := testFilm("Безумный Макс")
	film.Genres = []domain.Genre{{ID: 6}, {ID: 4}}

	created, err := films.Create(ctx, film)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Безумный Макс", created.Name)
	// рейтинг разворачивается в полный объект
	assert.Equal(t, domain.Rating{ID: 1, Name: "G"}, created.Mpa)
	require.Len(t, created.Genres, 2)
	assert.Equal(t, "Триллер", created.Genres[0].Name)
	assert.Equal(t, "Боевик", created.Genres[1].Name)
	assert.Empty(t, created.Likes)
}

func TestFilmRepository_CreateDeduplicatesGenres(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmRepository(db)

	film := testFilm("film")
	film.Genres = []domain.Genre{{ID: 1}, {ID: 1}, {ID: 2}}

	created, err := films.Create(context.Background(), film)
	require.NoError(t, err)
	assert.Len(t, created.Genres, 2)
}

func TestFilmRepository_CreateUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmRepository(db)
	ctx := context.Background()

	badRating := testFilm("film")
	badRating.Mpa.ID = 99
	_, err := films.Create(ctx, badRating)
	assert.ErrorIs(t, err, ErrNotFound)

	badGenre := testFilm("film")
	badGenre.Genres = []domain.Genre{{ID: 99}}
	_, err = films.Create(ctx, badGenre)
	assert.ErrorIs(t, err, ErrNotFound)

	// ничего не должно было записаться
	all, err := films.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFilmRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmRepository(db)
	ctx := context.Background()

	created := mustCreateFilm(t, films, "film")

	found, err := films.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = films.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilmRepository_UpdateReplacesRecordAndGenres(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmRepository(db)
	ctx := context.Background()

	created, err := films.Create(ctx, &domain.Film{
		Name:        "before",
		Description: "old",
		ReleaseDate: date(2000, 1, 1),
		Duration:    90,
		Mpa:         domain.Rating{ID: 1},
		Genres:      []domain.Genre{{ID: 1}},
	})
	require.NoError(t, err)

	updated, err := films.Update(ctx, &domain.Film{
		ID:          created.ID,
		Name:        "after",
		Description: "new",
		ReleaseDate: date(2010, 5, 5),
		Duration:    100,
		Mpa:         domain.Rating{ID: 3},
		Genres:      []domain.Genre{{ID: 2}, {ID: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Name)
	assert.Equal(t, domain.Rating{ID: 3, Name: "PG-13"}, updated.Mpa)
	require.Len(t, updated.Genres, 2)
	assert.Equal(t, int64(2), updated.Genres[0].ID)
	assert.Equal(t, int64(5), updated.Genres[1].ID)
}

func TestFilmRepository_UpdateMissingFilm(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmRepository(db)

	ghost := testFilm("ghost")
	ghost.ID = 42
	_, err := films.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilmRepository_Likes(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	film := mustCreateFilm(t, films, "film")
	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")

	liked, err := films.AddLike(ctx, film.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID}, liked.Likes)

	// повторный лайк не дублируется
	liked, err = films.AddLike(ctx, film.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID}, liked.Likes)

	liked, err = films.AddLike(ctx, film.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID, bob.ID}, liked.Likes)

	liked, err = films.RemoveLike(ctx, film.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob.ID}, liked.Likes)
}

func TestFilmRepository_LikeErrors(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	film := mustCreateFilm(t, films, "film")
	alice := mustCreateUser(t, users, "alice")

	_, err := films.AddLike(ctx, film.ID, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = films.AddLike(ctx, 42, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// снятие лайка, которого не было
	_, err = films.RemoveLike(ctx, film.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilmRepository_FindPopular(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	first := mustCreateFilm(t, films, "first")
	second := mustCreateFilm(t, films, "second")
	third := mustCreateFilm(t, films, "third")

	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")

	_, err := films.AddLike(ctx, second.ID, alice.ID)
	require.NoError(t, err)
	_, err = films.AddLike(ctx, second.ID, bob.ID)
	require.NoError(t, err)
	_, err = films.AddLike(ctx, third.ID, alice.ID)
	require.NoError(t, err)

	popular, err := films.FindPopular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, second.ID, popular[0].ID)
	assert.Equal(t, third.ID, popular[1].ID)

	// count больше, чем фильмов, — вернутся все
	popular, err = films.FindPopular(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, popular, 3)
	assert.Equal(t, first.ID, popular[2].ID)
}
