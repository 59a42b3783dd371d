package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	created, err := users.Create(ctx, &domain.User{
		Email:    "alice@example.com",
		Login:    "alice",
		Name:     "Алиса",
		Birthday: date(1995, 3, 14),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Empty(t, created.Friends)

	found, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = users.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	created := mustCreateUser(t, users, "alice")

	updated, err := users.Update(ctx, &domain.User{
		ID:       created.ID,
		Email:    "new@example.com",
		Login:    "alice2",
		Name:     "Алиса",
		Birthday: date(1990, 1, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice2", updated.Login)

	ghost := testUser("ghost")
	ghost.ID = 42
	_, err = users.Update(ctx, ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_FriendRequestStaysPending(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")

	// односторонняя заявка не видна ни одной из сторон
	owner, err := users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, owner.Friends)

	friends, err := users.FindFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	friends, err = users.FindFriends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestUserRepository_ReciprocalRequestConfirmsBoth(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")

	_, err := users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	owner, err := users.AddFriend(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID}, owner.Friends)

	friends, err := users.FindFriends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)

	friends, err = users.FindFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, alice.ID, friends[0].ID)
}

func TestUserRepository_AddFriendIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")

	_, err := users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = users.AddFriend(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	owner, err := users.AddFriend(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID}, owner.Friends)
}

func TestUserRepository_AddFriendUnknownUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice")

	_, err := users.AddFriend(ctx, alice.ID, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = users.AddFriend(ctx, 42, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_DeleteFriendDemotesReverseEdge(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")

	_, err := users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = users.AddFriend(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	owner, err := users.DeleteFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, owner.Friends)

	// встречное ребро понижено до заявки, дружба пропала у обоих
	friends, err := users.FindFriends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	// повторная заявка от alice снова подтверждает пару
	owner, err = users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob.ID}, owner.Friends)
}

func TestUserRepository_DeleteFriendMissingEdge(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")

	_, err := users.DeleteFriend(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_FindMutuals(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")
	carol := mustCreateUser(t, users, "carol")

	befriend := func(a, b int64) {
		_, err := users.AddFriend(ctx, a, b)
		require.NoError(t, err)
		_, err = users.AddFriend(ctx, b, a)
		require.NoError(t, err)
	}
	befriend(alice.ID, carol.ID)
	befriend(bob.ID, carol.ID)

	mutuals, err := users.FindMutuals(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, mutuals, 1)
	assert.Equal(t, carol.ID, mutuals[0].ID)

	// без общих друзей пересечение пустое
	mutuals, err = users.FindMutuals(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	assert.Empty(t, mutuals)
}

func TestUserRepository_FindFriendsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	_, err := users.FindFriends(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
