package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"bachatagram/internal/middleware"
)

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.Feed(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

// CreatePost accepts multipart form data: "text" plus an optional "media" file of
// any allowed kind.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	text := r.FormValue("text")

	var (
		fileName string
		size     int64
	)
	file, header, err := r.FormFile("media")
	if err == nil {
		defer file.Close()
		fileName = header.Filename
		size = header.Size
	}

	post, err := h.PostService.CreatePost(r.Context(), user.UserID, text, fileName, file, size)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	postID := mux.Vars(r)["id"]

	var req struct {
		Text string `json:"text" validate:"required"`
	}

	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	comment, err := h.SocialService.AddComment(r.Context(), user.UserID, postID, req.Text)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	comments, err := h.SocialService.ListComments(r.Context(), postID)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	postID := mux.Vars(r)["id"]

	if err := h.SocialService.Like(r.Context(), user.UserID, postID); err != nil {
		RespondError(w, err)
		return
	}

	count, err := h.SocialService.LikeCount(r.Context(), postID)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, map[string]int{"likes": count}, http.StatusOK)
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	postID := mux.Vars(r)["id"]

	if err := h.SocialService.Unlike(r.Context(), user.UserID, postID); err != nil {
		RespondError(w, err)
		return
	}

	count, err := h.SocialService.LikeCount(r.Context(), postID)
	if err != nil {
		RespondError(w, err)
		return
	}

	WriteSuccess(w, map[string]int{"likes": count}, http.StatusOK)
}
