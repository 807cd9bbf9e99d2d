// munui/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	"munui/boards"
	"munui/models"

	"github.com/go-chi/chi/v5"
)

// adminKeyHeader carries the shared admin secret on privileged requests.
// The credential itself lives in the store; handlers only pass it through.
const adminKeyHeader = "x-admin-key"

// HandleSetStatus updates the workflow status label on a post.
func HandleSetStatus(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleSetStatus")

	board := chi.URLParam(r, "board")
	if !boards.IsValid(board) {
		respondError(w, &models.NotFoundError{Msg: "존재하지 않는 보드"}, app)
		return
	}
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		respondError(w, &models.NotFoundError{Msg: "존재하지 않는 글"}, app)
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "잘못된 요청 본문"}, app)
		return
	}

	updated, err := app.DB().SetPostStatus(r.Context(), board, postID, in.Status, r.Header.Get(adminKeyHeader))
	if err != nil {
		respondError(w, err, app)
		return
	}
	if updated == 0 {
		logger.Info("Status update matched no post", "board", board, "post_id", postID)
	} else {
		logger.Info("Post status updated", "board", board, "post_id", postID, "status", in.Status)
	}
	respondJSON(w, http.StatusOK, map[string]int64{"updated": updated}, app)
}

// HandleCreateReply attaches an admin reply to a post.
func HandleCreateReply(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleCreateReply")

	board := chi.URLParam(r, "board")
	if !boards.IsValid(board) {
		respondError(w, &models.NotFoundError{Msg: "존재하지 않는 보드"}, app)
		return
	}
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		respondError(w, &models.NotFoundError{Msg: "존재하지 않는 글"}, app)
		return
	}

	var in struct {
		Content string `json:"content"`
		Author  string `json:"author"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "잘못된 요청 본문"}, app)
		return
	}

	id, err := app.DB().CreateReply(r.Context(), board, postID, in.Content, in.Author, r.Header.Get(adminKeyHeader))
	if err != nil {
		respondError(w, err, app)
		return
	}

	logger.Info("Reply created", "reply_id", id, "post_id", postID)
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id}, app)
}
