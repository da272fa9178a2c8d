package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/config"
	handlers "bachatagram/internal/handler"
	"bachatagram/internal/middleware"
	"bachatagram/internal/models"
	"bachatagram/internal/service"
)

func createStoryTestHandler(authService *MockAuthService, storyService *MockStoryService) *handlers.Handlers {
	cfg := &config.Config{
		SessionSecretKey: "test-secret-key",
		MaxUploadSize:    10 * 1024 * 1024,
		StoryTTL:         24 * time.Hour,
	}

	return &handlers.Handlers{
		AuthService:  authService,
		StoryService: storyService,
		Cfg:          cfg,
		Validate:     validator.New(),
	}
}

// protectedStoryRoute assembles the handler the way main does: session resolution
// in front, then the auth gate.
func protectedStoryRoute(authService *MockAuthService, h http.HandlerFunc) http.Handler {
	return middleware.Chain(
		middleware.RequireAuth(h),
		middleware.Session(authService),
	)
}

func multipartMedia(t *testing.T, field, fileName string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestCreateStoryHandler_Success(t *testing.T) {
	ana := &models.User{UserID: uuid.New().String(), Username: "ana"}

	authService := new(MockAuthService)
	authService.On("Authenticate", mock.Anything, "ana-credential").Return(ana)

	storyService := new(MockStoryService)
	storyService.On("CreateStory", mock.Anything, ana.UserID, "selfie.jpg", mock.AnythingOfType("int64")).
		Return(&models.Story{
			StoryID:   uuid.New().String(),
			UserID:    ana.UserID,
			MediaURL:  "http://x/stories/abc.jpg",
			MediaType: "image",
			CreatedAt: storyFixtureTime,
			ExpiresAt: storyFixtureTime.Add(24 * time.Hour),
		}, nil)

	handler := createStoryTestHandler(authService, storyService)
	route := protectedStoryRoute(authService, handler.CreateStory)

	body, contentType := multipartMedia(t, "media", "selfie.jpg", []byte("jpeg-data"))

	req := httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: "ana-credential"})
	rr := httptest.NewRecorder()

	route.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var story models.Story
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &story))
	assert.Equal(t, ana.UserID, story.UserID)
	assert.Equal(t, storyFixtureTime.Add(24*time.Hour), story.ExpiresAt)
}

func TestCreateStoryHandler_RequiresSession(t *testing.T) {
	authService := new(MockAuthService)
	// протухшая cookie разрешается в nil — запрос остаётся анонимным
	authService.On("Authenticate", mock.Anything, "revoked-credential").Return(nil)

	storyService := new(MockStoryService)

	handler := createStoryTestHandler(authService, storyService)
	route := protectedStoryRoute(authService, handler.CreateStory)

	body, contentType := multipartMedia(t, "media", "selfie.jpg", []byte("jpeg-data"))

	t.Run("Без cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/stories", bytes.NewReader(body.Bytes()))
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		route.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("С отозванной cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/stories", bytes.NewReader(body.Bytes()))
		req.Header.Set("Content-Type", contentType)
		req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: "revoked-credential"})
		rr := httptest.NewRecorder()

		route.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	storyService.AssertNotCalled(t, "CreateStory")
}

func TestCreateStoryHandler_RejectsBadMedia(t *testing.T) {
	ana := &models.User{UserID: uuid.New().String(), Username: "ana"}

	authService := new(MockAuthService)
	authService.On("Authenticate", mock.Anything, "ana-credential").Return(ana)

	storyService := new(MockStoryService)
	storyService.On("CreateStory", mock.Anything, ana.UserID, "song.mp3", mock.AnythingOfType("int64")).
		Return(nil, apperrors.ErrValidation)

	handler := createStoryTestHandler(authService, storyService)
	route := protectedStoryRoute(authService, handler.CreateStory)

	body, contentType := multipartMedia(t, "media", "song.mp3", []byte("mp3-data"))

	req := httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: "ana-credential"})
	rr := httptest.NewRecorder()

	route.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Сценарий: ана выложила историю и вышла из системы. История остаётся видимой
// другим авторизованным пользователям — видимость не зависит от живой сессии
// автора. А вот создать новую историю без сессии ана уже не может.
func TestStories_VisibleAfterAuthorLogout(t *testing.T) {
	ana := &models.User{UserID: uuid.New().String(), Username: "ana"}
	boris := &models.User{UserID: uuid.New().String(), Username: "boris"}

	anaStory := models.Story{
		StoryID:   uuid.New().String(),
		UserID:    ana.UserID,
		MediaURL:  "http://x/stories/ana.jpg",
		MediaType: "image",
		CreatedAt: storyFixtureTime,
		ExpiresAt: storyFixtureTime.Add(24 * time.Hour),
	}

	authService := new(MockAuthService)
	authService.On("Authenticate", mock.Anything, "boris-credential").Return(boris)
	authService.On("Authenticate", mock.Anything, "ana-old-credential").Return(nil)

	storyService := new(MockStoryService)
	storyService.On("ListActive", mock.Anything).Return([]models.Story{anaStory}, nil)

	handler := createStoryTestHandler(authService, storyService)

	listRoute := protectedStoryRoute(authService, handler.ListStories)
	createRoute := protectedStoryRoute(authService, handler.CreateStory)

	// борис видит историю аны после её выхода
	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: "boris-credential"})
	rr := httptest.NewRecorder()

	listRoute.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var stories []models.Story
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stories))
	require.Len(t, stories, 1)
	assert.Equal(t, ana.UserID, stories[0].UserID)

	// сама ана с отозванной сессией создать новую историю не может
	body, contentType := multipartMedia(t, "media", "new.jpg", []byte("jpeg-data"))
	req = httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: "ana-old-credential"})
	rr = httptest.NewRecorder()

	createRoute.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	storyService.AssertNotCalled(t, "CreateStory")
}

func TestListStoriesHandler_StorageFailure(t *testing.T) {
	boris := &models.User{UserID: uuid.New().String(), Username: "boris"}

	authService := new(MockAuthService)
	authService.On("Authenticate", mock.Anything, "boris-credential").Return(boris)

	storyService := new(MockStoryService)
	// при сбое вычистки запрос падает целиком, устаревшие истории не отдаются
	storyService.On("ListActive", mock.Anything).Return(nil, apperrors.ErrStorage)

	handler := createStoryTestHandler(authService, storyService)
	route := protectedStoryRoute(authService, handler.ListStories)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: "boris-credential"})
	rr := httptest.NewRecorder()

	route.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
