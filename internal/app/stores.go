package app

import (
	"context"
	"io"

	"socialnet/internal/model"
	"socialnet/internal/pkg/upload"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrNick(ctx context.Context, email, nick string) ([]model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	UpdateImage(ctx context.Context, id uint, image string) (string, error)
}

type FollowStore interface {
	Create(ctx context.Context, follow *model.Follow) error
	Get(ctx context.Context, followingID, followedID uint) (*model.Follow, error)
	Delete(ctx context.Context, followingID, followedID uint) (bool, error)
	ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]model.Follow, int64, error)
	ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]model.Follow, int64, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	FollowerIDs(ctx context.Context, userID uint) ([]uint, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
}

type PublicationStore interface {
	Create(ctx context.Context, pub *model.Publication) error
	GetByID(ctx context.Context, id uint) (*model.Publication, error)
	DeleteByIDAndUserID(ctx context.Context, id, userID uint) (bool, error)
	UpdateFile(ctx context.Context, id uint, file string) (string, error)
	ListByUserIDs(ctx context.Context, userIDs []uint, offset, limit int) ([]model.Publication, int64, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}

// FileStore is the disk side of uploads; *upload.Store satisfies it.
type FileStore interface {
	Save(originalName string, r io.Reader) (*upload.File, error)
	Path(name string) (string, error)
	Remove(name string) error
}

type FileCleanupPublisher interface {
	Publish(ctx context.Context, job model.FileCleanupJob) error
}

type LoginGuard interface {
	Locked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
