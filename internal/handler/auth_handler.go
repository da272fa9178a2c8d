package handlers

import (
	"encoding/json"
	"net/http"

	"bachatagram/internal/middleware"
	"bachatagram/internal/models"
	"bachatagram/internal/service"
)

type UserResponse struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

func userResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsAdmin:     user.IsAdmin,
	}
}

// setSessionCookie writes the single session cookie: a repeated login simply
// overwrites the previous credential.
func (h *Handlers) setSessionCookie(w http.ResponseWriter, credential string) {
	http.SetCookie(w, &http.Cookie{
		Name:     service.SessionCookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(h.Cfg.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     service.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, "Заполни логин и пароль", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, credential, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		RespondError(w, err)
		return
	}

	h.setSessionCookie(w, credential)
	WriteSuccess(w, userResponse(user), http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, credential, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// a single generic signal for unknown user and wrong password alike
		WriteError(w, "Неверный логин или пароль", http.StatusUnauthorized)
		return
	}

	h.setSessionCookie(w, credential)
	WriteSuccess(w, userResponse(user), http.StatusOK)
}

// Logout revokes the credential: the cleared cookie no longer resolves to anyone.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	WriteSuccess(w, map[string]string{"message": "Вы вышли из системы"}, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, userResponse(user), http.StatusOK)
}
