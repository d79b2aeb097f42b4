package routes

import (
	"net/http"

	"github.com/orgdrive/orgdrive/internal/app"
	"github.com/orgdrive/orgdrive/internal/handler"
	"github.com/orgdrive/orgdrive/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	files := handler.NewFilesHandler(app.FileService)
	favorites := handler.NewFavoritesHandler(app.FavoriteService)
	users := handler.NewUsersHandler(app.IdentityService)
	webhook := handler.NewWebhookHandler(app.IdentityService, app.Cfg.IdentityWebhookSecret, app.Cfg.IdentityIssuer)

	mux := http.NewServeMux()

	// Identity provider boundary
	mux.HandleFunc("POST /webhooks/identity", webhook.Handle)

	// Users
	mux.HandleFunc("GET /api/me", users.Me)
	mux.HandleFunc("GET /api/users/{id}", users.Profile)

	// Files
	mux.HandleFunc("POST /api/files/upload-url", files.UploadURL)
	mux.HandleFunc("POST /api/files", files.Create)
	mux.HandleFunc("GET /api/files", files.List)
	mux.HandleFunc("POST /api/files/{id}/trash", files.Trash)
	mux.HandleFunc("POST /api/files/{id}/restore", files.Restore)

	// Favorites
	mux.HandleFunc("PUT /api/files/{id}/favorite", favorites.Favorite)
	mux.HandleFunc("DELETE /api/files/{id}/favorite", favorites.Unfavorite)
	mux.HandleFunc("GET /api/favorites", favorites.List)

	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.Identity(app.IdentityService, app.Cfg.IdentityJWTSecret, app.Cfg.IdentityIssuer),
	)
}
