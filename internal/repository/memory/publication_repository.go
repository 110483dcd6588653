package memory

import (
	"context"
	"fmt"
	"time"

	"socialnet/internal/model"
)

type PublicationRepository struct {
	s *Store
}

func (r *PublicationRepository) Create(_ context.Context, pub *model.Publication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextPublicationID++
	pub.ID = r.s.nextPublicationID
	if pub.CreatedAt.IsZero() {
		pub.CreatedAt = r.s.now()
	}
	stored := *pub
	stored.User = nil
	r.s.publications[pub.ID] = stored
	return nil
}

func (r *PublicationRepository) GetByID(_ context.Context, id uint) (*model.Publication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pub, ok := r.s.publications[id]
	if !ok {
		return nil, nil
	}
	pub.User = r.s.publicUserLocked(pub.UserID)
	return &pub, nil
}

func (r *PublicationRepository) DeleteByIDAndUserID(_ context.Context, id, userID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pub, ok := r.s.publications[id]
	if !ok || pub.UserID != userID {
		return false, nil
	}
	delete(r.s.publications, id)
	return true, nil
}

func (r *PublicationRepository) UpdateFile(_ context.Context, id uint, file string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pub, ok := r.s.publications[id]
	if !ok {
		return "", fmt.Errorf("update publication file failed: publication %d not found", id)
	}
	previous := pub.File
	pub.File = file
	r.s.publications[id] = pub
	return previous, nil
}

func (r *PublicationRepository) ListByUserIDs(_ context.Context, userIDs []uint, offset, limit int) ([]model.Publication, int64, error) {
	if len(userIDs) == 0 {
		return nil, 0, nil
	}
	authors := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		authors[id] = struct{}{}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []model.Publication
	for _, p := range r.s.publications {
		if _, ok := authors[p.UserID]; ok {
			matched = append(matched, p)
		}
	}
	sortByCreated(matched, func(p model.Publication) (time.Time, uint) { return p.CreatedAt, p.ID }, true)

	out := page(matched, offset, limit)
	for i := range out {
		out[i].User = r.s.publicUserLocked(out[i].UserID)
	}
	return out, int64(len(matched)), nil
}

func (r *PublicationRepository) CountByUserID(_ context.Context, userID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, p := range r.s.publications {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}
