package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"socialnet/internal/model"
	"socialnet/internal/pkg/upload"
)

// saveUpload stores an upload and maps its rejections onto ErrValidation.
func saveUpload(store FileStore, originalName string, r io.Reader) (*upload.File, error) {
	file, err := store.Save(originalName, r)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrInvalidExtension):
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		case errors.Is(err, upload.ErrFileTooLarge):
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		default:
			return nil, err
		}
	}
	return file, nil
}

func resolveUpload(store FileStore, name string) (string, error) {
	path, err := store.Path(name)
	if err != nil {
		if errors.Is(err, upload.ErrFileNotFound) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	return path, nil
}

// discardUpload hands a superseded file to the cleanup queue, or removes it
// inline when no queue is configured or publishing fails.
func discardUpload(ctx context.Context, cleanup FileCleanupPublisher, store FileStore, kind, name string) {
	if name == "" || name == model.DefaultAvatar {
		return
	}
	if cleanup != nil {
		err := cleanup.Publish(ctx, model.FileCleanupJob{Kind: kind, Filename: name})
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("kind", kind).Str("file", name).Msg("enqueue file cleanup failed, removing inline")
	}
	if err := store.Remove(name); err != nil {
		log.Error().Err(err).Str("kind", kind).Str("file", name).Msg("remove file failed")
	}
}
