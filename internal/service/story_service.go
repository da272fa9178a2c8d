package service

import (
	"context"
	"fmt"
	"io"

	"bachatagram/internal/config"
	"bachatagram/internal/models"
	"bachatagram/internal/repository"
	"bachatagram/internal/storage"
	"bachatagram/internal/util"
)

type StoryService interface {
	CreateStory(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.Story, error)
	// ListActive first purges every expired story, then returns the survivors
	// newest-first. Expiry enforcement is lazy: this read is the garbage collector.
	ListActive(ctx context.Context) ([]models.Story, error)
}

type storyService struct {
	storyRepo repository.StoryRepository
	storage   storage.Storage
	cfg       *config.Config
	clock     util.Clock
}

func NewStoryService(storyRepo repository.StoryRepository, st storage.Storage, cfg *config.Config, clock util.Clock) StoryService {
	return &storyService{
		storyRepo: storyRepo,
		storage:   st,
		cfg:       cfg,
		clock:     clock,
	}
}

func (s *storyService) CreateStory(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.Story, error) {
	// stories accept image and video only
	objectName, mediaURL, kind, err := s.storage.Upload(ctx, "stories", fileName, file, size,
		storage.KindImage, storage.KindVideo)
	if err != nil {
		return nil, err
	}

	story := &models.Story{
		UserID:    userID,
		MediaURL:  mediaURL,
		MediaType: kind,
		CreatedAt: s.clock.NowUtc(),
	}

	err = s.storyRepo.Create(ctx, story, s.cfg.StoryTTL)
	if err != nil {
		s.storage.Delete(ctx, objectName)
		return nil, fmt.Errorf("ошибка сохранения истории: %w", err)
	}

	return story, nil
}

func (s *storyService) ListActive(ctx context.Context) ([]models.Story, error) {
	return s.storyRepo.EvictAndListActive(ctx, s.clock.NowUtc())
}
