// Package routes assembles the HTTP route table for the whole API.
package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bachaboard/internal/common"
	"bachaboard/internal/feed"
	"bachaboard/internal/feedback"
	"bachaboard/internal/media"
	"bachaboard/internal/user"
)

// Handlers carries every handler the router mounts. MediaFiles is nil
// when no blob store is configured; the /media route is skipped then.
type Handlers struct {
	User       *user.Handler
	Feed       *feed.Handler
	Feedback   *feedback.Handler
	MediaFiles *media.FileServer
}

// InitializeRoutes builds the router. Register, login, health and media
// downloads are public; everything else requires a bearer credential and
// is rejected with 401 before any storage is touched.
func InitializeRoutes(h Handlers, tm *common.TokenManager, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger(logger))

	auth := common.AuthMiddleware(tm)

	api := router.PathPrefix("/api").Subrouter()

	// public
	api.HandleFunc("/auth/register", h.User.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.User.Login).Methods("POST")
	api.HandleFunc("/health", healthHandler).Methods("GET")

	// bearer-protected
	protected := api.NewRoute().Subrouter()
	protected.Use(auth)

	protected.HandleFunc("/auth/me", h.User.Me).Methods("GET")

	protected.HandleFunc("/users", h.User.ListUsers).Methods("GET")
	protected.HandleFunc("/users/me", h.User.UpdateMe).Methods("PUT")
	protected.HandleFunc("/users/{id:[0-9]+}", h.User.GetUser).Methods("GET")
	protected.HandleFunc("/users/{id:[0-9]+}/follow", h.User.ToggleFollow).Methods("POST")

	protected.HandleFunc("/posts/feed", h.Feed.GetFeed).Methods("GET")
	protected.HandleFunc("/posts/upload-image", h.Feed.UploadImage).Methods("POST")
	protected.HandleFunc("/posts", h.Feed.CreatePost).Methods("POST")
	protected.HandleFunc("/posts/{id:[0-9]+}", h.Feed.GetPost).Methods("GET")
	protected.HandleFunc("/posts/{id:[0-9]+}", h.Feed.DeletePost).Methods("DELETE")
	protected.HandleFunc("/posts/{id:[0-9]+}/comment", h.Feed.AddComment).Methods("POST")
	protected.HandleFunc("/posts/{id:[0-9]+}/react", h.Feed.React).Methods("POST")
	protected.HandleFunc("/posts/{id:[0-9]+}/comments", h.Feed.ListComments).Methods("GET")

	protected.HandleFunc("/drawings/save", h.Feed.SaveDrawing).Methods("POST")
	protected.HandleFunc("/drawings/auto-save", h.Feed.AutoSaveDrawing).Methods("POST")

	protected.HandleFunc("/feedback", h.Feedback.Submit).Methods("POST")
	protected.HandleFunc("/feedback", h.Feedback.ListOwn).Methods("GET")

	if h.MediaFiles != nil {
		router.HandleFunc("/media/{fileId}", h.MediaFiles.ServeFile).Methods("GET")
	}

	return router
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "BachaBoard API",
	})
}

func requestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
