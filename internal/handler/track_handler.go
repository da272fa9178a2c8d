package handlers

import (
	"net/http"

	"bachatagram/internal/middleware"
)

// UploadTrack accepts multipart form data: "title", optional "album_id" and the
// "track" audio file.
func (h *Handlers) UploadTrack(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")

	var albumID *string
	if v := r.FormValue("album_id"); v != "" {
		albumID = &v
	}

	file, header, err := r.FormFile("track")
	if err != nil {
		WriteError(w, "Файл track обязателен", http.StatusBadRequest)
		return
	}
	defer file.Close()

	track, err := h.TrackService.UploadTrack(r.Context(), user.UserID, title, albumID, header.Filename, file, header.Size)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, track, http.StatusCreated)
}

func (h *Handlers) ListTracks(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	tracks, err := h.TrackService.ListTracks(r.Context(), user.UserID)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, tracks, http.StatusOK)
}
