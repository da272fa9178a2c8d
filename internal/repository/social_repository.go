package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/models"
)

type socialRepository struct {
	db *sqlx.DB
}

func NewSocialRepository(db *sqlx.DB) SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	comment.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO comments (comment_id, post_id, user_id, text, created_at)
		VALUES (:comment_id, :post_id, :user_id, :text, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *socialRepository) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

func (r *socialRepository) AddLike(ctx context.Context, like *models.Like) error {
	if like.LikeID == "" {
		like.LikeID = uuid.New().String()
	}
	like.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO likes (like_id, post_id, user_id, created_at)
		VALUES (:like_id, :post_id, :user_id, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, like)
	if err != nil {
		// one like per user per post
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("лайк уже поставлен: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("ошибка при добавлении лайка: %w", err)
	}

	return nil
}

func (r *socialRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("лайк: %w", apperrors.ErrNotFound)
	}

	return nil
}

func (r *socialRepository) CountLikes(ctx context.Context, postID string) (int, error) {
	query := `SELECT COUNT(*) FROM likes WHERE post_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте лайков: %w", err)
	}

	return count, nil
}
