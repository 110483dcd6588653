// Package memory is an in-process store driver with the same uniqueness and
// ordering guarantees as the MySQL repositories.
package memory

import (
	"sort"
	"sync"
	"time"

	"socialnet/internal/model"
)

type Store struct {
	mu sync.RWMutex

	users        map[uint]model.User
	follows      map[uint]model.Follow
	publications map[uint]model.Publication

	nextUserID        uint
	nextFollowID      uint
	nextPublicationID uint

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[uint]model.User),
		follows:      make(map[uint]model.Follow),
		publications: make(map[uint]model.Publication),
		now:          time.Now,
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Follows() *FollowRepository {
	return &FollowRepository{s: s}
}

func (s *Store) Publications() *PublicationRepository {
	return &PublicationRepository{s: s}
}

// publicUserLocked mirrors the column projection used when the MySQL driver
// populates related users.
func (s *Store) publicUserLocked(id uint) *model.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &model.User{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Nick:      u.Nick,
		Bio:       u.Bio,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sortByCreated[T any](items []T, key func(T) (time.Time, uint), desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, ii := key(items[i])
		tj, ij := key(items[j])
		if !ti.Equal(tj) {
			if desc {
				return ti.After(tj)
			}
			return ti.Before(tj)
		}
		if desc {
			return ii > ij
		}
		return ii < ij
	})
}
