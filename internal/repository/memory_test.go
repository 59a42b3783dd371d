package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/domain"
)

// Обе реализации хранилища должны вести себя одинаково; здесь прогоняем
// ключевые сценарии против варианта в памяти.

func TestMemoryStore_SeedsReferenceData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ratings, err := store.Ratings().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 5)
	assert.Equal(t, domain.Rating{ID: 1, Name: "G"}, ratings[0])
	assert.Equal(t, domain.Rating{ID: 5, Name: "NC-17"}, ratings[4])

	genres, err := store.Genres().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 6)
	assert.Equal(t, "Комедия", genres[0].Name)

	_, err = store.Ratings().FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Genres().FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FilmLifecycle(t *testing.T) {
	store := NewMemoryStore()
	films := store.Films()
	users := store.Users()
	ctx := context.Background()

	film := testFilm("film")
	film.Genres = []domain.Genre{{ID: 2}, {ID: 2}, {ID: 1}}
	created, err := films.Create(ctx, film)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "G", created.Mpa.Name)
	// дубликат жанра схлопывается, порядок по id
	require.Len(t, created.Genres, 2)
	assert.Equal(t, int64(1), created.Genres[0].ID)

	alice := mustCreateUser(t, users, "alice")
	liked, err := films.AddLike(ctx, created.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID}, liked.Likes)

	_, err = films.RemoveLike(ctx, created.ID, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	unliked, err := films.RemoveLike(ctx, created.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)

	badRating := testFilm("bad")
	badRating.Mpa.ID = 99
	_, err = films.Create(ctx, badRating)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FriendConfirmationModel(t *testing.T) {
	store := NewMemoryStore()
	users := store.Users()
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")

	owner, err := users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, owner.Friends)

	owner, err = users.AddFriend(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID}, owner.Friends)

	owner, err = users.DeleteFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, owner.Friends)

	friends, err := users.FindFriends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestMemoryStore_FindPopular(t *testing.T) {
	store := NewMemoryStore()
	films := store.Films()
	users := store.Users()
	ctx := context.Background()

	first := mustCreateFilm(t, films, "first")
	second := mustCreateFilm(t, films, "second")
	alice := mustCreateUser(t, users, "alice")

	_, err := films.AddLike(ctx, second.ID, alice.ID)
	require.NoError(t, err)

	popular, err := films.FindPopular(ctx, 1)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, second.ID, popular[0].ID)

	popular, err = films.FindPopular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, first.ID, popular[1].ID)
}
