package service

import (
	"context"
	"fmt"
	"io"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/config"
	"bachatagram/internal/models"
	"bachatagram/internal/repository"
	"bachatagram/internal/storage"
)

const feedLimit = 100

type PostService interface {
	CreatePost(ctx context.Context, userID, text, fileName string, file io.Reader, size int64) (*models.Post, error)
	Feed(ctx context.Context) ([]models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, st storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  st,
		cfg:      cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, userID, text, fileName string, file io.Reader, size int64) (*models.Post, error) {
	post := &models.Post{
		UserID:    userID,
		Text:      text,
		MediaType: "none",
	}

	if fileName != "" {
		objectName, mediaURL, kind, err := p.storage.Upload(ctx, "posts", fileName, file, size,
			storage.KindImage, storage.KindVideo, storage.KindAudio)
		if err != nil {
			return nil, err
		}

		post.MediaURL = mediaURL
		post.MediaType = kind

		err = p.postRepo.Create(ctx, post)
		if err != nil {
			p.storage.Delete(ctx, objectName)
			return nil, fmt.Errorf("ошибка сохранения поста: %w", err)
		}

		return post, nil
	}

	if text == "" {
		return nil, fmt.Errorf("пост должен содержать текст или медиа: %w", apperrors.ErrValidation)
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения поста: %w", err)
	}

	return post, nil
}

func (p *postService) Feed(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.ListRecent(ctx, feedLimit)
}
