package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/starfolio/internal/contact"
	"github.com/starfolio/internal/handler"
	"github.com/starfolio/internal/middleware"
	"github.com/starfolio/internal/web"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	// Forwarding headers are client-controlled unless a proxy rewrites them,
	// and the rate limiter keys on the resulting address.
	if app.config.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS))))

	r.Get("/api/health", handler.Health(app.primary.Name(), app.config.DemoMode))

	// Fallback delivery endpoint, deliberately unlimited
	apiHandler := handler.NewContactAPIHandler(app.logger)
	r.Post(contact.APIPath, apiHandler.Submit)

	// Contact form
	pageHandler := handler.NewPageHandler(app.logger, app.forms, web.Templates, app.profile, app.config.SecureCookies)
	r.Get("/", pageHandler.Form)
	r.With(middleware.RateLimit(app.config.RateLimitPerMinute)).Post("/contact", pageHandler.Submit)

	return r
}
