package app_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"socialnet/internal/app"
	"socialnet/internal/model"
	"socialnet/internal/pkg/upload"
	"socialnet/internal/repository/memory"
)

const testSecret = "test-secret"

type fixture struct {
	store        *memory.Store
	auth         *app.AuthService
	users        *app.UserService
	follows      *app.FollowService
	publications *app.PublicationService
	avatars      *upload.Store
	avatarDir    string
	media        *upload.Store
	mediaDir     string
	cleanup      *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	avatarDir := t.TempDir()
	avatars, err := upload.NewStore(avatarDir, "avatar", 2<<20, upload.ImageExtensions...)
	require.NoError(t, err)
	mediaDir := t.TempDir()
	media, err := upload.NewStore(mediaDir, "pub", 2<<20, upload.ImageExtensions...)
	require.NoError(t, err)

	store := memory.NewStore()
	users, follows, pubs := store.Users(), store.Follows(), store.Publications()
	cleanup := &recordingPublisher{}

	return &fixture{
		store:        store,
		auth:         app.NewAuthService(users, nil, testSecret, time.Hour),
		users:        app.NewUserService(users, follows, pubs, avatars, cleanup),
		follows:      app.NewFollowService(users, follows),
		publications: app.NewPublicationService(users, follows, pubs, media, cleanup),
		avatars:      avatars,
		avatarDir:    avatarDir,
		media:        media,
		mediaDir:     mediaDir,
		cleanup:      cleanup,
	}
}

func (f *fixture) register(t *testing.T, nick string) *model.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), app.RegisterInput{
		Name:     strings.ToUpper(nick[:1]) + nick[1:],
		LastName: "Tester",
		Email:    nick + "@example.com",
		Password: "secret-" + nick,
		Nick:     nick,
	})
	require.NoError(t, err)
	return user
}

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []model.FileCleanupJob
}

func (p *recordingPublisher) Publish(_ context.Context, job model.FileCleanupJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, job)
	return nil
}

func (p *recordingPublisher) Jobs() []model.FileCleanupJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.FileCleanupJob(nil), p.jobs...)
}
