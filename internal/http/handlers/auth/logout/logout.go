// Package logout реализует выход: сессия очищается, панели камеры и тарифов
// скрываются, поток камеры освобождается.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/services/view"
)

type Sessions interface {
	SetLoggedOut(ctx context.Context) error
}

type Navigator interface {
	LoggedOut() view.Flags
}

// Capture закрывается при уходе с панели камеры.
type Capture interface {
	Close() error
}

type Handler struct {
	log      *slog.Logger
	sessions Sessions
	nav      Navigator
	capture  Capture
}

func New(log *slog.Logger, sessions Sessions, nav Navigator, capture Capture) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
		nav:      nav,
		capture:  capture,
	}
}

// ServeHTTP godoc
// @Summary Выход
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.capture.Close(); err != nil {
		log.Warn("failed to release camera", sl.Err(err))
	}
	if err := h.sessions.SetLoggedOut(r.Context()); err != nil {
		log.Warn("failed to persist session", sl.Err(err))
	}
	flags := h.nav.LoggedOut()

	log.Info("signed out")
	render.JSON(w, r, response.OKWithData(flags))
}
