package app

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"socialnet/internal/model"
	"socialnet/internal/pkg/upload"
)

type PublicationService struct {
	userRepo        UserStore
	followRepo      FollowStore
	publicationRepo PublicationStore
	media           FileStore
	cleanup         FileCleanupPublisher
}

type PublicationView struct {
	ID        uint              `json:"id"`
	Text      string            `json:"text"`
	File      string            `json:"file,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	User      *model.PublicUser `json:"user"`
}

type PublicationList struct {
	Publications []PublicationView `json:"publications"`
	Page         model.Page        `json:"page"`
}

type Feed struct {
	Publications []PublicationView `json:"publications"`
	Page         model.Page        `json:"page"`
	Following    []uint            `json:"following"`
}

type MediaResult struct {
	Publication *PublicationView `json:"publication"`
	File        *upload.File     `json:"file"`
}

func NewPublicationService(
	userRepo UserStore,
	followRepo FollowStore,
	publicationRepo PublicationStore,
	media FileStore,
	cleanup FileCleanupPublisher,
) *PublicationService {
	return &PublicationService{
		userRepo:        userRepo,
		followRepo:      followRepo,
		publicationRepo: publicationRepo,
		media:           media,
		cleanup:         cleanup,
	}
}

func (s *PublicationService) Create(ctx context.Context, actorID uint, text string) (*PublicationView, error) {
	if actorID == 0 {
		return nil, ErrInvalidInput
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrPublicationEmpty
	}

	author, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	pub := &model.Publication{
		UserID: actorID,
		Text:   text,
	}
	if err := s.publicationRepo.Create(ctx, pub); err != nil {
		return nil, err
	}
	pub.User = author
	return toPublicationView(pub), nil
}

func (s *PublicationService) Get(ctx context.Context, id uint) (*PublicationView, error) {
	pub, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		return nil, ErrPublicationNotFound
	}
	return toPublicationView(pub), nil
}

// Delete removes a publication owned by actorID. Publications of other users
// are reported as not found.
func (s *PublicationService) Delete(ctx context.Context, actorID, id uint) error {
	pub, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pub == nil || pub.UserID != actorID {
		return ErrPublicationNotFound
	}

	deleted, err := s.publicationRepo.DeleteByIDAndUserID(ctx, id, actorID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPublicationNotFound
	}

	discardUpload(ctx, s.cleanup, s.media, model.FileKindPublication, pub.File)
	return nil
}

func (s *PublicationService) ListByUser(ctx context.Context, userID uint, page, limit int) (*PublicationList, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	page, limit, offset := normalizePage(page, limit)
	pubs, total, err := s.publicationRepo.ListByUserIDs(ctx, []uint{userID}, offset, limit)
	if err != nil {
		return nil, err
	}
	return &PublicationList{
		Publications: toPublicationViews(pubs),
		Page:         model.NewPage(page, limit, total),
	}, nil
}

func (s *PublicationService) UploadMedia(ctx context.Context, actorID, id uint, originalName string, r io.Reader) (*MediaResult, error) {
	pub, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pub == nil || pub.UserID != actorID {
		return nil, ErrPublicationNotFound
	}

	file, err := saveUpload(s.media, originalName, r)
	if err != nil {
		return nil, err
	}

	previous, err := s.publicationRepo.UpdateFile(ctx, id, file.Name)
	if err != nil {
		if removeErr := s.media.Remove(file.Name); removeErr != nil {
			log.Error().Err(removeErr).Str("file", file.Name).Msg("remove unrecorded media failed")
		}
		return nil, err
	}

	pub.File = file.Name
	discardUpload(ctx, s.cleanup, s.media, model.FileKindPublication, previous)

	return &MediaResult{Publication: toPublicationView(pub), File: file}, nil
}

func (s *PublicationService) MediaPath(name string) (string, error) {
	return resolveUpload(s.media, name)
}

// Feed pages through publications of the users viewerID follows, newest first.
func (s *PublicationService) Feed(ctx context.Context, viewerID uint, page, limit int) (*Feed, error) {
	following, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if following == nil {
		following = []uint{}
	}

	page, limit, offset := normalizePage(page, limit)
	pubs, total, err := s.publicationRepo.ListByUserIDs(ctx, following, offset, limit)
	if err != nil {
		return nil, err
	}
	return &Feed{
		Publications: toPublicationViews(pubs),
		Page:         model.NewPage(page, limit, total),
		Following:    following,
	}, nil
}

func toPublicationView(pub *model.Publication) *PublicationView {
	return &PublicationView{
		ID:        pub.ID,
		Text:      pub.Text,
		File:      pub.File,
		CreatedAt: pub.CreatedAt,
		User:      pub.User.Public(),
	}
}

func toPublicationViews(pubs []model.Publication) []PublicationView {
	views := make([]PublicationView, 0, len(pubs))
	for i := range pubs {
		views = append(views, *toPublicationView(&pubs[i]))
	}
	return views
}
