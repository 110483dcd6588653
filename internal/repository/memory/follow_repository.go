package memory

import (
	"context"
	"fmt"
	"time"

	"socialnet/internal/model"
	"socialnet/internal/repository"
)

type FollowRepository struct {
	s *Store
}

func (r *FollowRepository) Create(_ context.Context, follow *model.Follow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, f := range r.s.follows {
		if f.FollowingUserID == follow.FollowingUserID && f.FollowedUserID == follow.FollowedUserID {
			return fmt.Errorf("create follow failed: %w", repository.ErrDuplicate)
		}
	}

	r.s.nextFollowID++
	follow.ID = r.s.nextFollowID
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = r.s.now()
	}
	stored := *follow
	stored.FollowingUser = nil
	stored.FollowedUser = nil
	r.s.follows[follow.ID] = stored
	return nil
}

func (r *FollowRepository) Get(_ context.Context, followingID, followedID uint) (*model.Follow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, f := range r.s.follows {
		if f.FollowingUserID == followingID && f.FollowedUserID == followedID {
			found := f
			return &found, nil
		}
	}
	return nil, nil
}

func (r *FollowRepository) Delete(_ context.Context, followingID, followedID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, f := range r.s.follows {
		if f.FollowingUserID == followingID && f.FollowedUserID == followedID {
			delete(r.s.follows, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *FollowRepository) ListFollowing(_ context.Context, userID uint, offset, limit int) ([]model.Follow, int64, error) {
	return r.list(func(f model.Follow) bool { return f.FollowingUserID == userID }, offset, limit)
}

func (r *FollowRepository) ListFollowers(_ context.Context, userID uint, offset, limit int) ([]model.Follow, int64, error) {
	return r.list(func(f model.Follow) bool { return f.FollowedUserID == userID }, offset, limit)
}

func (r *FollowRepository) list(match func(model.Follow) bool, offset, limit int) ([]model.Follow, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := r.matchLocked(match)
	out := page(matched, offset, limit)
	for i := range out {
		out[i].FollowingUser = r.s.publicUserLocked(out[i].FollowingUserID)
		out[i].FollowedUser = r.s.publicUserLocked(out[i].FollowedUserID)
	}
	return out, int64(len(matched)), nil
}

func (r *FollowRepository) matchLocked(match func(model.Follow) bool) []model.Follow {
	var matched []model.Follow
	for _, f := range r.s.follows {
		if match(f) {
			matched = append(matched, f)
		}
	}
	sortByCreated(matched, func(f model.Follow) (time.Time, uint) { return f.CreatedAt, f.ID }, false)
	return matched
}

func (r *FollowRepository) FollowingIDs(_ context.Context, userID uint) ([]uint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := []uint{}
	for _, f := range r.matchLocked(func(f model.Follow) bool { return f.FollowingUserID == userID }) {
		ids = append(ids, f.FollowedUserID)
	}
	return ids, nil
}

func (r *FollowRepository) FollowerIDs(_ context.Context, userID uint) ([]uint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := []uint{}
	for _, f := range r.matchLocked(func(f model.Follow) bool { return f.FollowedUserID == userID }) {
		ids = append(ids, f.FollowingUserID)
	}
	return ids, nil
}

func (r *FollowRepository) CountFollowing(_ context.Context, userID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.matchLocked(func(f model.Follow) bool { return f.FollowingUserID == userID }))), nil
}

func (r *FollowRepository) CountFollowers(_ context.Context, userID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.matchLocked(func(f model.Follow) bool { return f.FollowedUserID == userID }))), nil
}
