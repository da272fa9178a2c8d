package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"bachatagram/internal/config"
	"bachatagram/internal/service"
)

type Handlers struct {
	AuthService   service.AuthService
	UserService   service.UserService
	StoryService  service.StoryService
	PostService   service.PostService
	AlbumService  service.AlbumService
	TrackService  service.TrackService
	SocialService service.SocialService
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:   services.Auth,
		UserService:   services.User,
		StoryService:  services.Story,
		PostService:   services.Post,
		AlbumService:  services.Album,
		TrackService:  services.Track,
		SocialService: services.Social,
		Cfg:           config,
		Validate:      validator.New(),
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
