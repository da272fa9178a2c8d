package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bachatagram/internal/models"
)

type trackRepository struct {
	db *sqlx.DB
}

func NewTrackRepository(db *sqlx.DB) TrackRepository {
	return &trackRepository{db: db}
}

func (r *trackRepository) Create(ctx context.Context, track *models.Track) error {
	if track.TrackID == "" {
		track.TrackID = uuid.New().String()
	}
	track.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO tracks (track_id, user_id, album_id, title, path, created_at)
		VALUES (:track_id, :user_id, :album_id, :title, :path, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, track)
	if err != nil {
		return fmt.Errorf("ошибка при создании трека: %w", err)
	}

	return nil
}

func (r *trackRepository) ListByUser(ctx context.Context, userID string) ([]models.Track, error) {
	query := `SELECT * FROM tracks WHERE user_id = $1 ORDER BY created_at DESC`

	var tracks []models.Track
	err := r.db.SelectContext(ctx, &tracks, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении треков: %w", err)
	}

	return tracks, nil
}
