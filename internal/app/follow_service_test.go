package app_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialnet/internal/app"
	"socialnet/internal/model"
	"socialnet/internal/repository"
	"socialnet/internal/repository/memory"
)

type mockFollowStore struct {
	mock.Mock
	app.FollowStore
}

func (m *mockFollowStore) Get(ctx context.Context, followingID, followedID uint) (*model.Follow, error) {
	args := m.Called(ctx, followingID, followedID)
	follow, _ := args.Get(0).(*model.Follow)
	return follow, args.Error(1)
}

func (m *mockFollowStore) Create(ctx context.Context, follow *model.Follow) error {
	return m.Called(ctx, follow).Error(0)
}

func TestFollowService_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	result, err := f.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, result.FollowingUser)
	assert.Equal(t, bob.ID, result.FollowedUser)
	assert.Equal(t, "Bob", result.Followed.Name)

	_, err = f.follows.Follow(ctx, alice.ID, bob.ID)
	require.ErrorIs(t, err, app.ErrFollowExists)
	assert.ErrorIs(t, err, app.ErrConflict)

	count, err := f.store.Follows().CountFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	followers, err := f.follows.ListFollowers(ctx, bob.ID, bob.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, followers.Follows, 1)
	assert.Equal(t, alice.ID, followers.Follows[0].FollowingUser.ID)
	assert.Equal(t, bob.ID, followers.Follows[0].FollowedUser.ID)
	assert.Equal(t, []uint{alice.ID}, followers.Relationship.Followers)
	assert.Empty(t, followers.Relationship.Following)

	require.NoError(t, f.follows.Unfollow(ctx, alice.ID, bob.ID))

	followers, err = f.follows.ListFollowers(ctx, bob.ID, bob.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, followers.Follows)
	assert.Equal(t, int64(0), followers.Page.Total)
}

func TestFollowService_Follow_Rejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")

	_, err := f.follows.Follow(ctx, alice.ID, alice.ID)
	require.ErrorIs(t, err, app.ErrSelfFollow)

	_, err = f.follows.Follow(ctx, alice.ID, 999)
	require.ErrorIs(t, err, app.ErrFollowTargetMissing)

	_, err = f.follows.Follow(ctx, alice.ID, 0)
	require.ErrorIs(t, err, app.ErrInvalidInput)

	count, err := f.store.Follows().CountFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFollowService_Follow_StorageDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := store.Users()
	for _, nick := range []string{"alice", "bob"} {
		require.NoError(t, users.Create(ctx, &model.User{Name: nick, LastName: "T", Nick: nick, Email: nick + "@example.com"}))
	}

	follows := &mockFollowStore{}
	follows.On("Get", mock.Anything, uint(1), uint(2)).Return(nil, nil)
	follows.On("Create", mock.Anything, mock.AnythingOfType("*model.Follow")).
		Return(fmt.Errorf("create follow failed: %w", repository.ErrDuplicate))

	svc := app.NewFollowService(users, follows)
	_, err := svc.Follow(ctx, 1, 2)
	require.ErrorIs(t, err, app.ErrFollowExists)
	follows.AssertExpectations(t)
}

func TestFollowService_Unfollow_Missing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	err := f.follows.Unfollow(ctx, alice.ID, bob.ID)
	require.ErrorIs(t, err, app.ErrFollowNotFound)
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestFollowService_ListFollowing_PagesCoverAllEdges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")

	var want []uint
	for i := 0; i < 12; i++ {
		u := f.register(t, fmt.Sprintf("user%02d", i))
		_, err := f.follows.Follow(ctx, alice.ID, u.ID)
		require.NoError(t, err)
		want = append(want, u.ID)
	}

	var got []uint
	for page := 1; ; page++ {
		list, err := f.follows.ListFollowing(ctx, alice.ID, alice.ID, page, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(12), list.Page.Total)
		assert.Equal(t, 3, list.Page.Pages)
		for _, view := range list.Follows {
			got = append(got, view.FollowedUser.ID)
		}
		if !list.Page.HasNextPage {
			break
		}
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("following pages mismatch (-want +got):\n%s", diff)
	}
}

func TestFollowService_ListFollowing_UnknownSubject(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")

	_, err := f.follows.ListFollowing(context.Background(), alice.ID, 404, 1, 5)
	require.ErrorIs(t, err, app.ErrUserNotFound)
}

func TestFollowService_RelationshipAndInfo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	carol := f.register(t, "carol")

	for _, edge := range [][2]uint{{alice.ID, bob.ID}, {alice.ID, carol.ID}, {bob.ID, alice.ID}} {
		_, err := f.follows.Follow(ctx, edge[0], edge[1])
		require.NoError(t, err)
	}

	rel, err := f.follows.RelationshipStatus(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{bob.ID, carol.ID}, rel.Following)
	assert.Equal(t, []uint{bob.ID}, rel.Followers)

	info, err := f.follows.FollowInfo(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, app.FollowInfo{Following: true, Follower: true}, *info)

	info, err = f.follows.FollowInfo(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, app.FollowInfo{Following: false, Follower: true}, *info)

	rel, err = f.follows.RelationshipStatus(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, rel.Following)
	assert.NotNil(t, rel.Followers)
}
