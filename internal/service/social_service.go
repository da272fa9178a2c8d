package service

import (
	"context"
	"fmt"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/models"
	"bachatagram/internal/repository"
)

type SocialService interface {
	AddComment(ctx context.Context, userID, postID, text string) (*models.Comment, error)
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	Like(ctx context.Context, userID, postID string) error
	Unlike(ctx context.Context, userID, postID string) error
	LikeCount(ctx context.Context, postID string) (int, error)
}

type socialService struct {
	socialRepo repository.SocialRepository
	postRepo   repository.PostRepository
}

func NewSocialService(socialRepo repository.SocialRepository, postRepo repository.PostRepository) SocialService {
	return &socialService{
		socialRepo: socialRepo,
		postRepo:   postRepo,
	}
}

func (s *socialService) AddComment(ctx context.Context, userID, postID, text string) (*models.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("текст комментария обязателен: %w", apperrors.ErrValidation)
	}

	// the post must exist
	_, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}

	err = s.socialRepo.CreateComment(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *socialService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.socialRepo.ListComments(ctx, postID)
}

func (s *socialService) Like(ctx context.Context, userID, postID string) error {
	_, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	return s.socialRepo.AddLike(ctx, &models.Like{PostID: postID, UserID: userID})
}

func (s *socialService) Unlike(ctx context.Context, userID, postID string) error {
	return s.socialRepo.RemoveLike(ctx, postID, userID)
}

func (s *socialService) LikeCount(ctx context.Context, postID string) (int, error) {
	return s.socialRepo.CountLikes(ctx, postID)
}
