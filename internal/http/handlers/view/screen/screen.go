package screen

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
	"github.com/magabrotheeeer/gesture-speak/internal/services/view"
)

type Sessions interface {
	Current() models.Session
}

type Router interface {
	Screen(s models.Session) view.Screen
}

// Handler отдаёт состав экрана для текущей сессии.
type Handler struct {
	log      *slog.Logger
	sessions Sessions
	router   Router
}

func New(log *slog.Logger, sessions Sessions, router Router) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
		router:   router,
	}
}

// ServeHTTP godoc
// @Summary Состав экрана
// @Tags View
// @Produce  json
// @Success 200 {object} response.Response
// @Router /view [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(h.router.Screen(h.sessions.Current())))
}
