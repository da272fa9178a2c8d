package service

import (
	"bachatagram/internal/config"
	"bachatagram/internal/repository"
	"bachatagram/internal/storage"
	"bachatagram/internal/util"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Story  StoryService
	Post   PostService
	Album  AlbumService
	Track  TrackService
	Social SocialService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, clock util.Clock) *Service {
	return &Service{
		Auth:   NewAuthService(rep.User, cfg),
		User:   NewUserService(rep, storage, cfg, clock),
		Story:  NewStoryService(rep.Story, storage, cfg, clock),
		Post:   NewPostService(rep.Post, storage, cfg),
		Album:  NewAlbumService(rep.Album, storage),
		Track:  NewTrackService(rep.Track, storage),
		Social: NewSocialService(rep.Social, rep.Post),
	}
}
