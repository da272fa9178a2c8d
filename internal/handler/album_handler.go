package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"bachatagram/internal/middleware"
)

func (h *Handlers) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req struct {
		Title       string `json:"title" validate:"required,max=120"`
		Description string `json:"description"`
	}

	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	album, err := h.AlbumService.CreateAlbum(r.Context(), user.UserID, req.Title, req.Description)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, album, http.StatusCreated)
}

func (h *Handlers) ListAlbums(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	albums, err := h.AlbumService.ListAlbums(r.Context(), user.UserID)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, albums, http.StatusOK)
}

func (h *Handlers) GetAlbum(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	albumID := mux.Vars(r)["id"]

	detail, err := h.AlbumService.GetAlbum(r.Context(), user.UserID, albumID)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, detail, http.StatusOK)
}

// AddPhoto accepts a multipart "photo" image into one's own album.
func (h *Handlers) AddPhoto(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	albumID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		WriteError(w, "Файл photo обязателен", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo, err := h.AlbumService.AddPhoto(r.Context(), user.UserID, albumID, header.Filename, file, header.Size)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, photo, http.StatusCreated)
}
