package models

import (
	"time"
)

type User struct {
	UserID      string    `json:"userId" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Bio         string    `json:"bio" db:"bio"`
	AvatarURL   string    `json:"avatarUrl" db:"avatar_url"`
	PassHash    string    `json:"-" db:"pass_hash"`
	IsAdmin     bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	MediaURL  string    `json:"mediaUrl" db:"media_url"`
	MediaType string    `json:"mediaType" db:"media_type"` // image/video/audio/none
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Album struct {
	AlbumID     string    `json:"albumId" db:"album_id"`
	UserID      string    `json:"userId" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Photo struct {
	PhotoID   string    `json:"photoId" db:"photo_id"`
	AlbumID   string    `json:"albumId" db:"album_id"`
	Path      string    `json:"path" db:"path"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Track struct {
	TrackID   string    `json:"trackId" db:"track_id"`
	UserID    string    `json:"userId" db:"user_id"`
	AlbumID   *string   `json:"albumId" db:"album_id"`
	Title     string    `json:"title" db:"title"`
	Path      string    `json:"path" db:"path"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Story struct {
	StoryID   string    `json:"storyId" db:"story_id"`
	UserID    string    `json:"userId" db:"user_id"`
	MediaURL  string    `json:"mediaUrl" db:"media_url"`
	MediaType string    `json:"mediaType" db:"media_type"` // image/video
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Like struct {
	LikeID    string    `json:"likeId" db:"like_id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
