package app

import (
	"context"
	"errors"
	"time"

	"socialnet/internal/model"
	"socialnet/internal/repository"
)

type FollowService struct {
	userRepo   UserStore
	followRepo FollowStore
}

type FollowedUser struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

type FollowResult struct {
	ID            uint         `json:"id"`
	FollowingUser uint         `json:"following_user"`
	FollowedUser  uint         `json:"followed_user"`
	CreatedAt     time.Time    `json:"created_at"`
	Followed      FollowedUser `json:"followedUser"`
}

// FollowView is an edge with both endpoints populated.
type FollowView struct {
	ID            uint              `json:"id"`
	FollowingUser *model.PublicUser `json:"following_user"`
	FollowedUser  *model.PublicUser `json:"followed_user"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Relationship holds the ids a viewer follows and the ids following the viewer.
type Relationship struct {
	Following []uint `json:"users_following"`
	Followers []uint `json:"users_follow_me"`
}

// FollowInfo tells whether the viewer follows the target and vice versa.
type FollowInfo struct {
	Following bool `json:"following"`
	Follower  bool `json:"follower"`
}

type FollowList struct {
	Follows      []FollowView `json:"follows"`
	Page         model.Page   `json:"page"`
	Relationship Relationship `json:"relationship"`
}

func NewFollowService(userRepo UserStore, followRepo FollowStore) *FollowService {
	return &FollowService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *FollowService) Follow(ctx context.Context, actorID, targetID uint) (*FollowResult, error) {
	if actorID == 0 || targetID == 0 {
		return nil, ErrInvalidInput
	}
	if actorID == targetID {
		return nil, ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrFollowTargetMissing
	}

	existing, err := s.followRepo.Get(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrFollowExists
	}

	follow := &model.Follow{
		FollowingUserID: actorID,
		FollowedUserID:  targetID,
	}
	// The unique index settles races that pass the read above.
	if err := s.followRepo.Create(ctx, follow); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrFollowExists
		}
		return nil, err
	}

	return &FollowResult{
		ID:            follow.ID,
		FollowingUser: follow.FollowingUserID,
		FollowedUser:  follow.FollowedUserID,
		CreatedAt:     follow.CreatedAt,
		Followed: FollowedUser{
			Name:     target.Name,
			LastName: target.LastName,
		},
	}, nil
}

func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if actorID == 0 || targetID == 0 {
		return ErrInvalidInput
	}
	deleted, err := s.followRepo.Delete(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFollowNotFound
	}
	return nil
}

// ListFollowing pages through the users subjectID follows. The relationship
// sets in the result belong to viewerID.
func (s *FollowService) ListFollowing(ctx context.Context, viewerID, subjectID uint, page, limit int) (*FollowList, error) {
	return s.list(ctx, viewerID, subjectID, page, limit, s.followRepo.ListFollowing)
}

// ListFollowers pages through the users following subjectID.
func (s *FollowService) ListFollowers(ctx context.Context, viewerID, subjectID uint, page, limit int) (*FollowList, error) {
	return s.list(ctx, viewerID, subjectID, page, limit, s.followRepo.ListFollowers)
}

type listFollowsFunc func(ctx context.Context, userID uint, offset, limit int) ([]model.Follow, int64, error)

func (s *FollowService) list(ctx context.Context, viewerID, subjectID uint, page, limit int, fetch listFollowsFunc) (*FollowList, error) {
	if subjectID == 0 {
		return nil, ErrInvalidInput
	}
	subject, err := s.userRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrUserNotFound
	}

	page, limit, offset := normalizePage(page, limit)
	follows, total, err := fetch(ctx, subjectID, offset, limit)
	if err != nil {
		return nil, err
	}

	rel, err := s.RelationshipStatus(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	views := make([]FollowView, 0, len(follows))
	for i := range follows {
		views = append(views, FollowView{
			ID:            follows[i].ID,
			FollowingUser: follows[i].FollowingUser.Public(),
			FollowedUser:  follows[i].FollowedUser.Public(),
			CreatedAt:     follows[i].CreatedAt,
		})
	}

	return &FollowList{
		Follows:      views,
		Page:         model.NewPage(page, limit, total),
		Relationship: *rel,
	}, nil
}

func (s *FollowService) RelationshipStatus(ctx context.Context, viewerID uint) (*Relationship, error) {
	return relationshipStatus(ctx, s.followRepo, viewerID)
}

func (s *FollowService) FollowInfo(ctx context.Context, viewerID, targetID uint) (*FollowInfo, error) {
	return followInfo(ctx, s.followRepo, viewerID, targetID)
}

func relationshipStatus(ctx context.Context, follows FollowStore, viewerID uint) (*Relationship, error) {
	following, err := follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	followers, err := follows.FollowerIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if following == nil {
		following = []uint{}
	}
	if followers == nil {
		followers = []uint{}
	}
	return &Relationship{Following: following, Followers: followers}, nil
}

func followInfo(ctx context.Context, follows FollowStore, viewerID, targetID uint) (*FollowInfo, error) {
	out, err := follows.Get(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	in, err := follows.Get(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}
	return &FollowInfo{Following: out != nil, Follower: in != nil}, nil
}
