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

type AlbumDetail struct {
	Album  *models.Album  `json:"album"`
	Photos []models.Photo `json:"photos"`
}

type AlbumService interface {
	CreateAlbum(ctx context.Context, userID, title, description string) (*models.Album, error)
	ListAlbums(ctx context.Context, userID string) ([]models.Album, error)
	GetAlbum(ctx context.Context, userID, albumID string) (*AlbumDetail, error)
	AddPhoto(ctx context.Context, userID, albumID, fileName string, file io.Reader, size int64) (*models.Photo, error)
}

type albumService struct {
	albumRepo repository.AlbumRepository
	storage   storage.Storage
}

func NewAlbumService(albumRepo repository.AlbumRepository, st storage.Storage) AlbumService {
	return &albumService{
		albumRepo: albumRepo,
		storage:   st,
	}
}

func (s *albumService) CreateAlbum(ctx context.Context, userID, title, description string) (*models.Album, error) {
	if title == "" {
		return nil, fmt.Errorf("название альбома обязательно: %w", apperrors.ErrValidation)
	}

	album := &models.Album{
		UserID:      userID,
		Title:       title,
		Description: description,
	}

	err := s.albumRepo.Create(ctx, album)
	if err != nil {
		return nil, err
	}

	return album, nil
}

func (s *albumService) ListAlbums(ctx context.Context, userID string) ([]models.Album, error) {
	return s.albumRepo.ListByUser(ctx, userID)
}

// GetAlbum returns the album with its photos. Foreign albums are reported as not
// found rather than forbidden.
func (s *albumService) GetAlbum(ctx context.Context, userID, albumID string) (*AlbumDetail, error) {
	album, err := s.ownAlbum(ctx, userID, albumID)
	if err != nil {
		return nil, err
	}

	photos, err := s.albumRepo.ListPhotos(ctx, albumID)
	if err != nil {
		return nil, err
	}

	return &AlbumDetail{Album: album, Photos: photos}, nil
}

func (s *albumService) AddPhoto(ctx context.Context, userID, albumID, fileName string, file io.Reader, size int64) (*models.Photo, error) {
	_, err := s.ownAlbum(ctx, userID, albumID)
	if err != nil {
		return nil, err
	}

	_, photoURL, _, err := s.storage.Upload(ctx, "photos", fileName, file, size, storage.KindImage)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		AlbumID: albumID,
		Path:    photoURL,
	}

	err = s.albumRepo.AddPhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	return photo, nil
}

func (s *albumService) ownAlbum(ctx context.Context, userID, albumID string) (*models.Album, error) {
	album, err := s.albumRepo.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}

	if album.UserID != userID {
		return nil, fmt.Errorf("альбом с ID %s: %w", albumID, apperrors.ErrNotFound)
	}

	return album, nil
}
