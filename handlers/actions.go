// munui/handlers/actions.go
package handlers

import (
	"net/http"

	"munui/boards"
	"munui/config"
	"munui/models"
	"munui/utils"

	"github.com/go-chi/chi/v5"
)

// HandleListBoards returns the fixed board set.
func HandleListBoards(w http.ResponseWriter, r *http.Request, app App) {
	respondJSON(w, http.StatusOK, boards.List(), app)
}

// HandleListPosts returns every post on a board, newest first, each with its
// full reply sequence.
func HandleListPosts(w http.ResponseWriter, r *http.Request, app App) {
	board := chi.URLParam(r, "board")
	if !boards.IsValid(board) {
		respondError(w, &models.NotFoundError{Msg: "존재하지 않는 보드"}, app)
		return
	}

	posts, err := app.DB().GetPostsForBoard(r.Context(), board)
	if err != nil {
		respondError(w, err, app)
		return
	}
	respondJSON(w, http.StatusOK, posts, app)
}

// HandleCreatePost creates a new inquiry on a board.
func HandleCreatePost(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleCreatePost")

	board := chi.URLParam(r, "board")
	if !boards.IsValid(board) {
		respondError(w, &models.NotFoundError{Msg: "존재하지 않는 보드"}, app)
		return
	}

	ip := utils.GetIPAddress(r)
	if !app.RateLimiter().GetLimiter(ip).Allow() {
		logger.Warn("Rate limit exceeded", "ip", ip)
		respondJSON(w, http.StatusTooManyRequests, map[string]string{"error": "요청이 너무 잦습니다. 잠시 후 다시 시도해 주세요."}, app)
		return
	}

	var in struct {
		Name    string `json:"name"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		logger.Warn("Malformed request body", "error", err)
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "잘못된 요청 본문"}, app)
		return
	}
	if len(in.Name) > config.MaxNameLen || len(in.Title) > config.MaxTitleLen || len(in.Content) > config.MaxContentLen {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "입력 값이 허용 길이를 초과했습니다."}, app)
		return
	}

	id, err := app.DB().CreatePost(r.Context(), board, in.Name, in.Title, in.Content)
	if err != nil {
		respondError(w, err, app)
		return
	}

	logger.Info("New post created", "post_id", id, "board", board)
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id}, app)
}
