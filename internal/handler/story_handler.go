package handlers

import (
	"net/http"

	"bachatagram/internal/middleware"
)

// CreateStory accepts a multipart "media" file and publishes it as an ephemeral
// story with the configured TTL.
func (h *Handlers) CreateStory(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		WriteError(w, "Файл media обязателен", http.StatusBadRequest)
		return
	}
	defer file.Close()

	story, err := h.StoryService.CreateStory(r.Context(), user.UserID, header.Filename, file, header.Size)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, story, http.StatusCreated)
}

// ListStories garbage-collects expired stories and returns the active ones
// newest-first.
func (h *Handlers) ListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.StoryService.ListActive(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, stories, http.StatusOK)
}
