package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/config"
	"bachatagram/internal/models"
	"bachatagram/internal/repository"
	"bachatagram/internal/storage"
	"bachatagram/internal/util"
)

// Profile is the public profile page aggregate: the user, everything they posted
// and their still-active stories.
type Profile struct {
	User    *models.User   `json:"user"`
	Posts   []models.Post  `json:"posts"`
	Albums  []models.Album `json:"albums"`
	Tracks  []models.Track `json:"tracks"`
	Stories []models.Story `json:"stories"`
}

type UpdateSettingsRequest struct {
	UserID      string
	DisplayName string
	Bio         string
	AvatarName  string
	Avatar      io.Reader
	AvatarSize  int64
}

type UserService interface {
	Profile(ctx context.Context, username string) (*Profile, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	EnsureAdmin(ctx context.Context) error
}

type userService struct {
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
	albumRepo repository.AlbumRepository
	trackRepo repository.TrackRepository
	storyRepo repository.StoryRepository
	storage   storage.Storage
	cfg       *config.Config
	clock     util.Clock
}

func NewUserService(repo *repository.Repository, st storage.Storage, cfg *config.Config, clock util.Clock) UserService {
	return &userService{
		userRepo:  repo.User,
		postRepo:  repo.Post,
		albumRepo: repo.Album,
		trackRepo: repo.Track,
		storyRepo: repo.Story,
		storage:   st,
		cfg:       cfg,
		clock:     clock,
	}
}

func (s *userService) Profile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByUser(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	albums, err := s.albumRepo.ListByUser(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	tracks, err := s.trackRepo.ListByUser(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	stories, err := s.storyRepo.ListActiveByUser(ctx, user.UserID, s.clock.NowUtc())
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:    user,
		Posts:   posts,
		Albums:  albums,
		Tracks:  tracks,
		Stories: stories,
	}, nil
}

func (s *userService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	user.Bio = req.Bio

	if req.AvatarName != "" {
		// avatars are images only
		_, avatarURL, _, err := s.storage.Upload(ctx, "avatars", req.AvatarName, req.Avatar, req.AvatarSize,
			storage.KindImage)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = avatarURL
	}

	err = s.userRepo.UpdateProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListUsers(ctx)
}

// EnsureAdmin creates the administrator account from the environment on first start.
func (s *userService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	_, err := s.userRepo.GetUserByUsername(ctx, s.cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("ошибка при проверке администратора: %w", err)
	}

	admin := &models.User{
		Username:    s.cfg.AdminUsername,
		Email:       fmt.Sprintf("%s@local", s.cfg.AdminUsername),
		DisplayName: "Administrator",
		IsAdmin:     true,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.userRepo.CreateUser(ctx, admin, s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("ошибка при создании администратора: %w", err)
	}

	log.Printf("Создан администратор: %s", s.cfg.AdminUsername)
	return nil
}
