// Package gesturespeak собирает HTTP-приложение демо-движка.
package gesturespeak

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/capture/camera"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/capture/recording"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/capture/speak"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/capture/state"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/health"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/plans/list"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/premium/upgrade"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/session/current"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/view/navigate"
	"github.com/magabrotheeeer/gesture-speak/internal/http/handlers/view/screen"
	"github.com/magabrotheeeer/gesture-speak/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/jwt"
	"github.com/magabrotheeeer/gesture-speak/internal/plans"
	services "github.com/magabrotheeeer/gesture-speak/internal/services/auth"
	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
	"github.com/magabrotheeeer/gesture-speak/internal/services/view"
	"github.com/magabrotheeeer/gesture-speak/internal/session"
)

// Deps зависимости обработчиков.
type Deps struct {
	Auth     *services.AuthService
	Sessions *session.Store
	View     *view.Router
	Capture  *gesture.Simulator
	Tokens   jwt.Maker
	Limiter  *rate.Limiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, d.Limiter))
			r.Post("/login", login.New(logger, d.Auth, d.Sessions, d.View, d.Tokens).ServeHTTP)
			r.Post("/register", register.New(logger, d.Auth, d.Sessions, d.View, d.Tokens).ServeHTTP)
		})
		r.Post("/logout", logout.New(logger, d.Sessions, d.View, d.Capture).ServeHTTP)
		r.Get("/session", current.New(logger, d.Sessions).ServeHTTP)
		r.Get("/plans", list.New(logger, plans.All).ServeHTTP)
		r.Get("/view", screen.New(logger, d.Sessions, d.View).ServeHTTP)
		r.Post("/view/{panel}/{action}", navigate.New(logger, d.Sessions, d.View, d.Capture).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Tokens, logger))
			r.Use(middlewarectx.SessionUserMiddleware(logger, d.Sessions))
			r.Post("/upgrade", upgrade.New(logger, d.Auth, d.Sessions, d.View, plans.Find).ServeHTTP)
			r.Get("/capture", state.New(logger, d.Capture).ServeHTTP)
			r.Post("/capture/camera", camera.New(logger, d.Capture).ServeHTTP)
			r.Post("/capture/recording", recording.New(logger, d.Capture).ServeHTTP)
			r.With(middlewarectx.PremiumMiddleware(logger, d.Sessions)).
				Post("/capture/speak", speak.New(logger, d.Capture).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
