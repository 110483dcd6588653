package app

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"socialnet/internal/model"
	"socialnet/internal/pkg/upload"
	"socialnet/internal/repository"
)

type UserService struct {
	userRepo        UserStore
	followRepo      FollowStore
	publicationRepo PublicationStore
	avatars         FileStore
	cleanup         FileCleanupPublisher
}

// UpdateUserInput lists the only fields a user may change on their own
// profile. Empty Name, LastName and Password leave the stored value as is; a
// nil Bio does the same.
type UpdateUserInput struct {
	Name     string
	LastName string
	Nick     string
	Email    string
	Bio      *string
	Password string
}

type Profile struct {
	User       *model.PublicUser `json:"user"`
	FollowInfo FollowInfo        `json:"follow_info"`
}

type UserList struct {
	Users        []*model.PublicUser `json:"users"`
	Page         model.Page          `json:"page"`
	Relationship Relationship        `json:"relationship"`
}

type AvatarResult struct {
	User *model.User  `json:"user"`
	File *upload.File `json:"file"`
}

type Counters struct {
	UserID       uint   `json:"user_id"`
	Name         string `json:"name"`
	LastName     string `json:"last_name"`
	Following    int64  `json:"following"`
	Followers    int64  `json:"followers"`
	Publications int64  `json:"publications"`
}

// NewUserService builds the service. cleanup may be nil; superseded avatars
// are then removed inline.
func NewUserService(
	userRepo UserStore,
	followRepo FollowStore,
	publicationRepo PublicationStore,
	avatars FileStore,
	cleanup FileCleanupPublisher,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		followRepo:      followRepo,
		publicationRepo: publicationRepo,
		avatars:         avatars,
		cleanup:         cleanup,
	}
}

func (s *UserService) GetProfile(ctx context.Context, viewerID, targetID uint) (*Profile, error) {
	if targetID == 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	info, err := followInfo(ctx, s.followRepo, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user.Public(), FollowInfo: *info}, nil
}

func (s *UserService) ListUsers(ctx context.Context, viewerID uint, page, limit int) (*UserList, error) {
	page, limit, offset := normalizePage(page, limit)
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	rel, err := relationshipStatus(ctx, s.followRepo, viewerID)
	if err != nil {
		return nil, err
	}

	public := make([]*model.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return &UserList{
		Users:        public,
		Page:         model.NewPage(page, limit, total),
		Relationship: *rel,
	}, nil
}

func (s *UserService) UpdateSelf(ctx context.Context, actorID uint, input UpdateUserInput) (*model.User, error) {
	email := normalizeKey(input.Email)
	nick := normalizeKey(input.Nick)
	if email == "" || nick == "" {
		return nil, ErrEmailNickRequired
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	holders, err := s.userRepo.FindByEmailOrNick(ctx, email, nick)
	if err != nil {
		return nil, err
	}
	for _, holder := range holders {
		if holder.ID != actorID {
			return nil, ErrUserExists
		}
	}

	user.Email = email
	user.Nick = nick
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if lastName := strings.TrimSpace(input.LastName); lastName != "" {
		user.LastName = lastName
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores the image and points the user at it. A rejected or
// unrecorded file does not stay on disk.
func (s *UserService) UploadAvatar(ctx context.Context, actorID uint, originalName string, r io.Reader) (*AvatarResult, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	file, err := saveUpload(s.avatars, originalName, r)
	if err != nil {
		return nil, err
	}

	previous, err := s.userRepo.UpdateImage(ctx, actorID, file.Name)
	if err != nil {
		if removeErr := s.avatars.Remove(file.Name); removeErr != nil {
			log.Error().Err(removeErr).Str("file", file.Name).Msg("remove unrecorded avatar failed")
		}
		return nil, err
	}

	user.Image = file.Name
	discardUpload(ctx, s.cleanup, s.avatars, model.FileKindAvatar, previous)

	return &AvatarResult{User: user, File: file}, nil
}

func (s *UserService) AvatarPath(name string) (string, error) {
	return resolveUpload(s.avatars, name)
}

func (s *UserService) Counters(ctx context.Context, targetID uint) (*Counters, error) {
	if targetID == 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	following, err := s.followRepo.CountFollowing(ctx, targetID)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.CountFollowers(ctx, targetID)
	if err != nil {
		return nil, err
	}
	publications, err := s.publicationRepo.CountByUserID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &Counters{
		UserID:       user.ID,
		Name:         user.Name,
		LastName:     user.LastName,
		Following:    following,
		Followers:    followers,
		Publications: publications,
	}, nil
}
