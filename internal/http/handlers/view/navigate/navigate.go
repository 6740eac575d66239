// Package navigate открывает и закрывает панели экрана.
//
// Закрытие панели камеры равносильно уходу с неё: запись останавливается,
// поток камеры освобождается.
package navigate

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
	"github.com/magabrotheeeer/gesture-speak/internal/services/view"
)

const (
	ActionOpen  = "open"
	ActionClose = "close"
)

type Sessions interface {
	Current() models.Session
}

type Router interface {
	Open(p view.Panel) (view.Flags, error)
	Close(p view.Panel) (view.Flags, error)
	Screen(s models.Session) view.Screen
}

type Capture interface {
	Close() error
}

type Handler struct {
	log      *slog.Logger
	sessions Sessions
	router   Router
	capture  Capture
}

func New(log *slog.Logger, sessions Sessions, router Router, capture Capture) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
		router:   router,
		capture:  capture,
	}
}

// ServeHTTP godoc
// @Summary Открыть или закрыть панель
// @Tags View
// @Produce  json
// @Param panel path string true "login, camera или plans"
// @Param action path string true "open или close"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /view/{panel}/{action} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.view.navigate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	panel := view.Panel(chi.URLParam(r, "panel"))
	action := chi.URLParam(r, "action")

	var err error
	switch action {
	case ActionOpen:
		_, err = h.router.Open(panel)
	case ActionClose:
		_, err = h.router.Close(panel)
		if err == nil && panel == view.PanelCamera {
			if closeErr := h.capture.Close(); closeErr != nil {
				log.Warn("failed to release camera", sl.Err(closeErr))
			}
		}
	default:
		log.Error("unknown action", slog.String("action", action))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("unknown action"))
		return
	}
	if errors.Is(err, view.ErrUnknownPanel) {
		log.Error("unknown panel", slog.String("panel", string(panel)))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("unknown panel"))
		return
	}

	log.Debug("view updated", slog.String("panel", string(panel)), slog.String("action", action))
	render.JSON(w, r, response.OKWithData(h.router.Screen(h.sessions.Current())))
}
