package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func SetupRouter(app App) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(NewStructuredLogger(app.Logger()))
	mux.Use(middleware.Recoverer)
	mux.Use(CORSMiddleware)
	mux.Use(CookieMiddleware)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/boards", MakeHandler(app, HandleListBoards))
		r.Route("/{board}", func(r chi.Router) {
			r.Get("/posts", MakeHandler(app, HandleListPosts))
			r.Post("/posts", MakeHandler(app, HandleCreatePost))
			r.Patch("/posts/{postID}/status", MakeHandler(app, HandleSetStatus))
			r.Post("/posts/{postID}/replies", MakeHandler(app, HandleCreateReply))
		})
	})

	// Static SPA hosting
	mux.NotFound(MakeHandler(app, ServeSPA))

	return mux
}

// ServeSPA serves files from the public directory, falling back to
// index.html for client-side routes. API paths never fall through to the
// SPA.
func ServeSPA(w http.ResponseWriter, r *http.Request, app App) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(app.PublicDir(), filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(app.PublicDir(), "index.html"))
}
