package memory

import (
	"context"
	"fmt"
	"time"

	"socialnet/internal/model"
	"socialnet/internal/repository"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email || existing.Nick == user.Nick {
			return fmt.Errorf("create user failed: %w", repository.ErrDuplicate)
		}
	}

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if user.Image == "" {
		user.Image = model.DefaultAvatar
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByID(_ context.Context, id uint) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) FindByEmailOrNick(_ context.Context, email, nick string) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var users []model.User
	for _, u := range r.s.users {
		if u.Email == email || u.Nick == nick {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *UserRepository) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, u)
	}
	sortByCreated(all, func(u model.User) (time.Time, uint) { return u.CreatedAt, u.ID }, false)
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *UserRepository) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[user.ID]
	if !ok {
		return fmt.Errorf("update user failed: user %d not found", user.ID)
	}
	for id, existing := range r.s.users {
		if id != user.ID && (existing.Email == user.Email || existing.Nick == user.Nick) {
			return fmt.Errorf("update user failed: %w", repository.ErrDuplicate)
		}
	}

	current.Name = user.Name
	current.LastName = user.LastName
	current.Nick = user.Nick
	current.Email = user.Email
	current.Bio = user.Bio
	current.PasswordHash = user.PasswordHash
	r.s.users[user.ID] = current
	return nil
}

func (r *UserRepository) UpdateImage(_ context.Context, id uint, image string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return "", fmt.Errorf("update user image failed: user %d not found", id)
	}
	previous := u.Image
	u.Image = image
	r.s.users[id] = u
	return previous, nil
}
