package memory_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/model"
	"socialnet/internal/repository"
	"socialnet/internal/repository/memory"
)

func seedUsers(t *testing.T, store *memory.Store, n int) []model.User {
	t.Helper()
	users := make([]model.User, 0, n)
	for i := 0; i < n; i++ {
		u := model.User{
			Name:         fmt.Sprintf("User%d", i),
			LastName:     "Seed",
			Nick:         fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: "hash",
		}
		require.NoError(t, store.Users().Create(context.Background(), &u))
		users = append(users, u)
	}
	return users
}

func TestUserRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := seedUsers(t, store, 2)

	err := store.Users().Create(ctx, &model.User{Nick: "fresh", Email: users[0].Email})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	err = store.Users().Create(ctx, &model.User{Nick: users[0].Nick, Email: "fresh@example.com"})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	second := users[1]
	second.Email = users[0].Email
	require.ErrorIs(t, store.Users().Update(ctx, &second), repository.ErrDuplicate)

	got, err := store.Users().GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_Defaults(t *testing.T) {
	store := memory.NewStore()
	users := seedUsers(t, store, 1)

	assert.Equal(t, model.RoleUser, users[0].Role)
	assert.Equal(t, model.DefaultAvatar, users[0].Image)
	assert.False(t, users[0].CreatedAt.IsZero())
}

func TestUserRepository_ListPages(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedUsers(t, store, 7)

	first, total, err := store.Users().List(ctx, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, first, 5)
	assert.Equal(t, "user0", first[0].Nick)

	second, _, err := store.Users().List(ctx, 5, 5)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "user6", second[1].Nick)

	beyond, _, err := store.Users().List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestFollowRepository(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := seedUsers(t, store, 3)
	follows := store.Follows()

	require.NoError(t, follows.Create(ctx, &model.Follow{FollowingUserID: users[0].ID, FollowedUserID: users[1].ID}))
	require.NoError(t, follows.Create(ctx, &model.Follow{FollowingUserID: users[2].ID, FollowedUserID: users[1].ID}))
	err := follows.Create(ctx, &model.Follow{FollowingUserID: users[0].ID, FollowedUserID: users[1].ID})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	list, total, err := follows.ListFollowers(ctx, users[1].ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, users[0].ID, list[0].FollowingUser.ID)
	assert.Empty(t, list[0].FollowingUser.PasswordHash)
	assert.Equal(t, users[1].Nick, list[0].FollowedUser.Nick)

	ids, err := follows.FollowerIDs(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{users[0].ID, users[2].ID}, ids)

	deleted, err := follows.Delete(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = follows.Delete(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	count, err := follows.CountFollowers(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPublicationRepository_ListByUserIDs(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := seedUsers(t, store, 2)
	pubs := store.Publications()

	for i := 0; i < 3; i++ {
		require.NoError(t, pubs.Create(ctx, &model.Publication{UserID: users[i%2].ID, Text: fmt.Sprintf("post %d", i)}))
	}

	list, total, err := pubs.ListByUserIDs(ctx, []uint{users[0].ID}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, "post 2", list[0].Text)
	assert.Equal(t, users[0].Nick, list[0].User.Nick)

	list, total, err = pubs.ListByUserIDs(ctx, nil, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	deleted, err := pubs.DeleteByIDAndUserID(ctx, 1, users[1].ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserRepository_ListOutOfRangeOffset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedUsers(t, store, 3)

	for _, offset := range []int{-2, 3, math.MaxInt} {
		users, total, err := store.Users().List(ctx, offset, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Empty(t, users, "offset %d", offset)
	}

	users, _, err := store.Users().List(ctx, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateImageAndFile_ReturnPrevious(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := seedUsers(t, store, 1)

	previous, err := store.Users().UpdateImage(ctx, users[0].ID, "avatar-1.png")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAvatar, previous)

	previous, err = store.Users().UpdateImage(ctx, users[0].ID, "avatar-2.png")
	require.NoError(t, err)
	assert.Equal(t, "avatar-1.png", previous)

	_, err = store.Users().UpdateImage(ctx, 404, "avatar-3.png")
	require.Error(t, err)

	pub := &model.Publication{UserID: users[0].ID, Text: "post"}
	require.NoError(t, store.Publications().Create(ctx, pub))

	previous, err = store.Publications().UpdateFile(ctx, pub.ID, "pub-1.png")
	require.NoError(t, err)
	assert.Empty(t, previous)

	previous, err = store.Publications().UpdateFile(ctx, pub.ID, "pub-2.png")
	require.NoError(t, err)
	assert.Equal(t, "pub-1.png", previous)
}
