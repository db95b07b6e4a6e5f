package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"

	"github.com/aps-academy/admin-service/internal/storage"
)

// Upload folders, one per entity that carries media
const (
	FolderBanners = "banners"
	FolderCourses = "courses"
	FolderEvents  = "events"
)

type mediaService struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewMediaService(store storage.Storage, logger *slog.Logger) MediaService {
	return &mediaService{storage: store, logger: logger}
}

func (s *mediaService) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (*UploadedMedia, error) {
	switch folder {
	case FolderBanners, FolderCourses, FolderEvents:
	default:
		return nil, ErrUploadFolderNotAllowed
	}
	if err := storage.ValidateExtension(filename); err != nil {
		return nil, err
	}
	if contentType == "" || contentType == "application/octet-stream" {
		if guessed := mime.TypeByExtension(filepath.Ext(filename)); guessed != "" {
			contentType = guessed
		}
	}

	key := storage.ObjectKey(folder, filename, timeNow())
	url, err := s.storage.Upload(ctx, key, r, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}

	s.logger.Info("Media uploaded", "key", key, "content_type", contentType)
	return &UploadedMedia{Key: key, URL: url, MediaType: contentType}, nil
}
