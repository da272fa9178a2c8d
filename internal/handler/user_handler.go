package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"bachatagram/internal/middleware"
	"bachatagram/internal/service"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// GetProfile is public: the profile page does not require a session.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profile, err := h.UserService.Profile(r.Context(), username)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, profile, http.StatusOK)
}

// UpdateSettings accepts multipart form data: "display_name", "bio" and an
// optional "avatar" image.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	req := service.UpdateSettingsRequest{
		UserID:      user.UserID,
		DisplayName: r.FormValue("display_name"),
		Bio:         r.FormValue("bio"),
	}

	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer file.Close()
		req.AvatarName = header.Filename
		req.Avatar = io.Reader(file)
		req.AvatarSize = header.Size
	}

	updated, err := h.UserService.UpdateSettings(r.Context(), req)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, userResponse(updated), http.StatusOK)
}

func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}
