package api

import (
	"net/http"
	"time"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/rohits-web03/lyricjournal/docs"
	"github.com/rohits-web03/lyricjournal/internal/api/handlers"
	"github.com/rohits-web03/lyricjournal/internal/api/middleware"
	"github.com/rohits-web03/lyricjournal/internal/api/services"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth      *services.AuthService
	Lyrics    *services.LyricService
	Logger    *zap.Logger
	Cors      cors.Options
	PublicDir string
	Now       func() time.Time
}

func SetupRouter(d Deps) http.Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	mainMux := http.NewServeMux()
	h := handlers.New(d.Auth, d.Lyrics, d.Logger)
	requireAuth := middleware.AuthMiddleware(d.Auth, d.Logger)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /api/health", handlers.Health(d.Now))
	mainMux.HandleFunc("POST /api/register", h.Register)
	mainMux.HandleFunc("POST /api/login", h.Login)
	mainMux.Handle("GET /docs/", httpSwagger.WrapHandler)

	// ---------- PROTECTED ROUTES ----------
	protected := func(fn http.HandlerFunc) http.Handler { return requireAuth(fn) }
	mainMux.Handle("GET /api/lyrics", protected(h.ListLyrics))
	mainMux.Handle("POST /api/lyrics", protected(h.CreateLyric))
	mainMux.Handle("PUT /api/lyrics/{id}", protected(h.UpdateLyric))
	mainMux.Handle("DELETE /api/lyrics/{id}", protected(h.DeleteLyric))
	mainMux.Handle("GET /api/tags", protected(h.ListTags))

	// Everything else is the client shell.
	mainMux.HandleFunc("GET /", handlers.Static(d.PublicDir))

	d.Logger.Debug("router initialized")
	handler := cors.New(d.Cors).Handler(mainMux)
	handler = middleware.Recover(d.Logger)(handler)
	handler = middleware.Logger(d.Logger)(handler)
	return handler
}
