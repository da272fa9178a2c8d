package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/config"
	"bachatagram/internal/models"
	"bachatagram/internal/repository"
)

// SessionCookieName is the single cookie holding the session credential. Setting a
// new one replaces the previous credential for the client: last write wins.
const SessionCookieName = "bachatagram_session"

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"displayName" validate:"max=120"`
	Password    string `json:"password" validate:"required,min=6"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	// Authenticate resolves a session credential to its user. A missing, malformed,
	// expired or orphaned credential resolves to nil, never to an error.
	Authenticate(ctx context.Context, credential string) *models.User
	EstablishSession(user *models.User) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	// explicit duplicate pre-check in one query, the unique constraint stays as a
	// backstop for concurrent registrations
	count, err := s.userRepo.CountByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка при проверке логина: %w", err)
	}
	if count > 0 {
		return nil, "", fmt.Errorf("логин или email уже занят: %w", apperrors.ErrConflict)
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	credential, err := s.EstablishSession(user)
	if err != nil {
		return nil, "", err
	}

	return user, credential, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	credential, err := s.EstablishSession(user)
	if err != nil {
		return nil, "", err
	}

	return user, credential, nil
}

// EstablishSession issues a signed credential bound to the user. Nothing is written
// server-side: the credential itself is the whole session.
func (s *authService) EstablishSession(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"uid":      user.UserID,
		"username": user.Username,
		"exp":      now.Add(s.cfg.SessionDuration).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	credential, err := token.SignedString([]byte(s.cfg.SessionSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи сессии: %w", err)
	}

	return credential, nil
}

func (s *authService) Authenticate(ctx context.Context, credential string) *models.User {
	if credential == "" {
		return nil
	}

	token, err := jwt.Parse(credential, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SessionSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	userID, ok := claims["uid"].(string)
	if !ok {
		return nil
	}

	// the credential must resolve to a user that still exists
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil
	}

	return user
}
