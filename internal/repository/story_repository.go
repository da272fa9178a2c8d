package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/models"
)

type storyRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story, ttl time.Duration) error {
	if story.StoryID == "" {
		story.StoryID = uuid.New().String()
	}

	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now().UTC()
	}
	story.ExpiresAt = story.CreatedAt.Add(ttl)

	query := `
		INSERT INTO stories (story_id, user_id, media_url, media_type, created_at, expires_at)
		VALUES (:story_id, :user_id, :media_url, :media_type, :created_at, :expires_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, story)
	if err != nil {
		return fmt.Errorf("ошибка при создании истории: %v: %w", err, apperrors.ErrStorage)
	}

	return nil
}

// EvictAndListActive runs the garbage collection and the read as one transaction: no
// reader observes a partially evicted set, and expired rows are never served. If the
// delete fails the whole read fails, there is no stale fallback.
func (r *storyRepository) EvictAndListActive(ctx context.Context, asOf time.Time) ([]models.Story, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии транзакции: %v: %w", err, apperrors.ErrStorage)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM stories WHERE expires_at <= $1`, asOf)
	if err != nil {
		return nil, fmt.Errorf("ошибка при удалении истекших историй: %v: %w", err, apperrors.ErrStorage)
	}

	var stories []models.Story
	err = tx.SelectContext(ctx, &stories, `
		SELECT * FROM stories
		WHERE expires_at > $1
		ORDER BY created_at DESC
	`, asOf)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении историй: %v: %w", err, apperrors.ErrStorage)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при фиксации транзакции: %v: %w", err, apperrors.ErrStorage)
	}

	return stories, nil
}

func (r *storyRepository) ListActiveByUser(ctx context.Context, userID string, asOf time.Time) ([]models.Story, error) {
	var stories []models.Story

	query := `
		SELECT * FROM stories
		WHERE user_id = $1 AND expires_at > $2
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &stories, query, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении историй пользователя: %v: %w", err, apperrors.ErrStorage)
	}

	return stories, nil
}
