package service

import (
	"context"
	"fmt"
	"io"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/models"
	"bachatagram/internal/repository"
	"bachatagram/internal/storage"
)

type TrackService interface {
	UploadTrack(ctx context.Context, userID, title string, albumID *string, fileName string, file io.Reader, size int64) (*models.Track, error)
	ListTracks(ctx context.Context, userID string) ([]models.Track, error)
}

type trackService struct {
	trackRepo repository.TrackRepository
	storage   storage.Storage
}

func NewTrackService(trackRepo repository.TrackRepository, st storage.Storage) TrackService {
	return &trackService{
		trackRepo: trackRepo,
		storage:   st,
	}
}

func (s *trackService) UploadTrack(ctx context.Context, userID, title string, albumID *string, fileName string, file io.Reader, size int64) (*models.Track, error) {
	if title == "" {
		return nil, fmt.Errorf("название трека обязательно: %w", apperrors.ErrValidation)
	}

	objectName, trackURL, _, err := s.storage.Upload(ctx, "tracks", fileName, file, size, storage.KindAudio)
	if err != nil {
		return nil, err
	}

	track := &models.Track{
		UserID:  userID,
		AlbumID: albumID,
		Title:   title,
		Path:    trackURL,
	}

	err = s.trackRepo.Create(ctx, track)
	if err != nil {
		s.storage.Delete(ctx, objectName)
		return nil, err
	}

	return track, nil
}

func (s *trackService) ListTracks(ctx context.Context, userID string) ([]models.Track, error) {
	return s.trackRepo.ListByUser(ctx, userID)
}
