package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"bachatagram/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CountByUsernameOrEmail(ctx context.Context, username, email string) (int, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *models.Story, ttl time.Duration) error
	// EvictAndListActive deletes every story with expires_at <= asOf and returns the
	// remaining ones newest-first, inside a single transaction.
	EvictAndListActive(ctx context.Context, asOf time.Time) ([]models.Story, error)
	ListActiveByUser(ctx context.Context, userID string, asOf time.Time) ([]models.Story, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListRecent(ctx context.Context, limit int) ([]models.Post, error)
	ListByUser(ctx context.Context, userID string) ([]models.Post, error)
}

type AlbumRepository interface {
	Create(ctx context.Context, album *models.Album) error
	GetByID(ctx context.Context, albumID string) (*models.Album, error)
	ListByUser(ctx context.Context, userID string) ([]models.Album, error)
	AddPhoto(ctx context.Context, photo *models.Photo) error
	ListPhotos(ctx context.Context, albumID string) ([]models.Photo, error)
}

type TrackRepository interface {
	Create(ctx context.Context, track *models.Track) error
	ListByUser(ctx context.Context, userID string) ([]models.Track, error)
}

type SocialRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	AddLike(ctx context.Context, like *models.Like) error
	RemoveLike(ctx context.Context, postID, userID string) error
	CountLikes(ctx context.Context, postID string) (int, error)
}

type Repository struct {
	User   UserRepository
	Story  StoryRepository
	Post   PostRepository
	Album  AlbumRepository
	Track  TrackRepository
	Social SocialRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Story:  NewStoryRepository(db),
		Post:   NewPostRepository(db),
		Album:  NewAlbumRepository(db),
		Track:  NewTrackRepository(db),
		Social: NewSocialRepository(db),
	}
}
