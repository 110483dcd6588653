package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialnet/internal/app"
	"socialnet/internal/model"
	"socialnet/internal/pkg/jwtutil"
	"socialnet/internal/repository/memory"
)

type mockLoginGuard struct {
	mock.Mock
}

func (m *mockLoginGuard) Locked(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockLoginGuard) RecordFailure(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockLoginGuard) Reset(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.auth.Register(ctx, app.RegisterInput{
		Name:     " Alice ",
		LastName: "Liddell",
		Email:    "Alice@Example.com",
		Password: "wonderland",
		Nick:     "Alice",
		Bio:      "curious",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.Nick)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, model.DefaultAvatar, user.Image)
	assert.NotEqual(t, "wonderland", user.PasswordHash)
}

func TestAuthService_Register_DuplicateEmailAnyCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")

	_, err := f.auth.Register(ctx, app.RegisterInput{
		Name:     "Other",
		LastName: "Person",
		Email:    "ALICE@example.COM",
		Password: "pw",
		Nick:     "someone-else",
	})
	require.ErrorIs(t, err, app.ErrUserExists)
	assert.ErrorIs(t, err, app.ErrConflict)
}

func TestAuthService_Register_DuplicateNick(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")

	_, err := f.auth.Register(ctx, app.RegisterInput{
		Name:     "Other",
		LastName: "Person",
		Email:    "other@example.com",
		Password: "pw",
		Nick:     "ALICE",
	})
	require.ErrorIs(t, err, app.ErrUserExists)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(context.Background(), app.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "pw",
		Nick:     "alice",
	})
	require.ErrorIs(t, err, app.ErrInvalidInput)
	assert.ErrorIs(t, err, app.ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")

	result, err := f.auth.Login(ctx, app.LoginInput{Email: "ALICE@example.com", Password: "secret-alice"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, result.User.ID)

	claims, err := jwtutil.ParseToken(testSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestAuthService_Login_Failures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")

	tests := []struct {
		name  string
		input app.LoginInput
		want  error
		kind  error
	}{
		{
			name:  "wrong password",
			input: app.LoginInput{Email: "alice@example.com", Password: "nope"},
			want:  app.ErrInvalidCredential,
			kind:  app.ErrUnauthorized,
		},
		{
			name:  "unknown email",
			input: app.LoginInput{Email: "bob@example.com", Password: "secret-alice"},
			want:  app.ErrUserNotFound,
			kind:  app.ErrNotFound,
		},
		{
			name:  "missing password",
			input: app.LoginInput{Email: "alice@example.com"},
			want:  app.ErrInvalidInput,
			kind:  app.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Login(ctx, tt.input)
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestAuthService_Login_GuardLocksOut(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	guard := &mockLoginGuard{}
	auth := app.NewAuthService(store.Users(), guard, testSecret, time.Hour)

	guard.On("Locked", mock.Anything, "alice@example.com").Return(true, nil).Once()

	_, err := auth.Login(ctx, app.LoginInput{Email: "alice@example.com", Password: "pw"})
	require.ErrorIs(t, err, app.ErrTooManyAttempts)
	guard.AssertExpectations(t)
	guard.AssertNotCalled(t, "RecordFailure", mock.Anything, mock.Anything)
}

func TestAuthService_Login_GuardRecordsAndResets(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	guard := &mockLoginGuard{}
	auth := app.NewAuthService(store.Users(), guard, testSecret, time.Hour)

	_, err := auth.Register(ctx, app.RegisterInput{
		Name: "Alice", LastName: "Liddell", Email: "alice@example.com", Password: "pw", Nick: "alice",
	})
	require.NoError(t, err)

	guard.On("Locked", mock.Anything, "alice@example.com").Return(false, nil)
	guard.On("RecordFailure", mock.Anything, "alice@example.com").Return(nil).Once()
	guard.On("Reset", mock.Anything, "alice@example.com").Return(nil).Once()

	_, err = auth.Login(ctx, app.LoginInput{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, app.ErrInvalidCredential)

	_, err = auth.Login(ctx, app.LoginInput{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	guard.AssertExpectations(t)
}

func TestAuthService_Login_GuardErrorIsNotFatal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	guard := &mockLoginGuard{}
	auth := app.NewAuthService(store.Users(), guard, testSecret, time.Hour)

	_, err := auth.Register(ctx, app.RegisterInput{
		Name: "Alice", LastName: "Liddell", Email: "alice@example.com", Password: "pw", Nick: "alice",
	})
	require.NoError(t, err)

	guard.On("Locked", mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
	guard.On("Reset", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	_, err = auth.Login(ctx, app.LoginInput{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)
}
