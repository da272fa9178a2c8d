package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/models"
)

type albumRepository struct {
	db *sqlx.DB
}

func NewAlbumRepository(db *sqlx.DB) AlbumRepository {
	return &albumRepository{db: db}
}

func (r *albumRepository) Create(ctx context.Context, album *models.Album) error {
	if album.AlbumID == "" {
		album.AlbumID = uuid.New().String()
	}
	album.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO albums (album_id, user_id, title, description, created_at)
		VALUES (:album_id, :user_id, :title, :description, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, album)
	if err != nil {
		return fmt.Errorf("ошибка при создании альбома: %w", err)
	}

	return nil
}

func (r *albumRepository) GetByID(ctx context.Context, albumID string) (*models.Album, error) {
	var album models.Album

	query := `SELECT * FROM albums WHERE album_id = $1`

	err := r.db.GetContext(ctx, &album, query, albumID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("альбом с ID %s: %w", albumID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении альбома: %w", err)
	}

	return &album, nil
}

func (r *albumRepository) ListByUser(ctx context.Context, userID string) ([]models.Album, error) {
	query := `SELECT * FROM albums WHERE user_id = $1 ORDER BY created_at DESC`

	var albums []models.Album
	err := r.db.SelectContext(ctx, &albums, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении альбомов: %w", err)
	}

	return albums, nil
}

func (r *albumRepository) AddPhoto(ctx context.Context, photo *models.Photo) error {
	if photo.PhotoID == "" {
		photo.PhotoID = uuid.New().String()
	}
	photo.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO photos (photo_id, album_id, path, created_at)
		VALUES (:photo_id, :album_id, :path, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, photo)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении фото: %w", err)
	}

	return nil
}

func (r *albumRepository) ListPhotos(ctx context.Context, albumID string) ([]models.Photo, error) {
	query := `SELECT * FROM photos WHERE album_id = $1 ORDER BY created_at DESC`

	var photos []models.Photo
	err := r.db.SelectContext(ctx, &photos, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении фото альбома: %w", err)
	}

	return photos, nil
}
