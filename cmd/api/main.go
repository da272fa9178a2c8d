package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"bachatagram/cmd/app"
	"bachatagram/internal/config"
	handlers "bachatagram/internal/handler"
	"bachatagram/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.SessionSecretKey == "" {
		log.Fatal("SESSION_SECRET_KEY не установлен в .env файле")
	}

	db, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	r := mux.NewRouter()
	r.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// public: registration, login and profile pages
	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodGet)
	api.HandleFunc("/users/{username}", handler.GetProfile).Methods(http.MethodGet)

	// everything below requires a resolved session
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireAuth)

	protected.HandleFunc("/me", handler.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/me", handler.UpdateSettings).Methods(http.MethodPut)

	protected.HandleFunc("/feed", handler.GetFeed).Methods(http.MethodGet)
	protected.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{id}/comments", handler.AddComment).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{id}/comments", handler.ListComments).Methods(http.MethodGet)
	protected.HandleFunc("/posts/{id}/like", handler.LikePost).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{id}/like", handler.UnlikePost).Methods(http.MethodDelete)

	protected.HandleFunc("/albums", handler.CreateAlbum).Methods(http.MethodPost)
	protected.HandleFunc("/albums", handler.ListAlbums).Methods(http.MethodGet)
	protected.HandleFunc("/albums/{id}", handler.GetAlbum).Methods(http.MethodGet)
	protected.HandleFunc("/albums/{id}/photos", handler.AddPhoto).Methods(http.MethodPost)

	protected.HandleFunc("/tracks", handler.UploadTrack).Methods(http.MethodPost)
	protected.HandleFunc("/tracks", handler.ListTracks).Methods(http.MethodGet)

	protected.HandleFunc("/stories", handler.CreateStory).Methods(http.MethodPost)
	protected.HandleFunc("/stories", handler.ListStories).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", handler.AdminListUsers).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		r,
		middleware.Session(services.Auth),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)
	log.Printf("Лимит загрузки: %s", humanize.Bytes(uint64(cfg.MaxUploadSize)))

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
