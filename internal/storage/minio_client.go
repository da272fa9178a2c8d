package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/config"
)

// Media kinds accepted by the upload allow-lists.
const (
	KindImage = "image"
	KindVideo = "video"
	KindAudio = "audio"
)

var allowedExtensions = map[string]string{
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
	".gif":  KindImage,
	".webp": KindImage,
	".mp4":  KindVideo,
	".mov":  KindVideo,
	".webm": KindVideo,
	".mp3":  KindAudio,
	".wav":  KindAudio,
	".m4a":  KindAudio,
	".ogg":  KindAudio,
}

type Storage interface {
	// Upload stores the file and returns its object name, public URL and detected
	// media kind. A file whose extension is outside the allowed kinds is rejected.
	Upload(ctx context.Context, folder, fileName string, file io.Reader, size int64, allowedKinds ...string) (string, string, string, error)
	Delete(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	config *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании клиента MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке бакета: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка при создании бакета: %w", err)
		}
	}

	return &MinIOClient{client: client, config: cfg}, nil
}

// MediaKindForExt returns the media kind for a file extension, or "" if the
// extension is not allowed at all.
func MediaKindForExt(ext string) string {
	return allowedExtensions[strings.ToLower(ext)]
}

func (m *MinIOClient) Upload(ctx context.Context, folder, fileName string, file io.Reader, size int64, allowedKinds ...string) (string, string, string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	kind := MediaKindForExt(ext)
	if kind == "" {
		return "", "", "", fmt.Errorf("недопустимое расширение файла %q: %w", ext, apperrors.ErrValidation)
	}

	allowed := false
	for _, k := range allowedKinds {
		if kind == k {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", "", "", fmt.Errorf("файлы типа %q здесь не принимаются: %w", kind, apperrors.ErrValidation)
	}

	// sniff the real content type instead of trusting the extension
	header := make([]byte, 3072)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", "", "", fmt.Errorf("ошибка при чтении файла: %w", err)
	}
	contentType := mimetype.Detect(header[:n]).String()
	reader := io.MultiReader(bytes.NewReader(header[:n]), file)

	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	_, err = m.client.PutObject(ctx, m.config.MinIO.BucketName, objectName, reader, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", "", fmt.Errorf("ошибка загрузки в MinIO: %v: %w", err, apperrors.ErrStorage)
	}

	url := fmt.Sprintf("%s/%s/%s", m.config.MinIO.PublicURL, m.config.MinIO.BucketName, objectName)

	return objectName, url, kind, nil
}

func (m *MinIOClient) Delete(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}
