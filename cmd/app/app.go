package app

import (
	"context"
	"log"
	"time"

	"bachatagram/internal/config"
	"bachatagram/internal/database"
	"bachatagram/internal/repository"
	"bachatagram/internal/service"
	"bachatagram/internal/storage"
	"bachatagram/internal/util"
)

func App(cfg *config.Config) (*database.DB, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, util.NewRealClock())

	// admin bootstrap from the environment
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := services.User.EnsureAdmin(ctx); err != nil {
		log.Printf("Внимание: не удалось создать администратора: %v", err)
	}

	return db, services
}
