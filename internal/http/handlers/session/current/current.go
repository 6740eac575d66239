package current

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

type Sessions interface {
	Current() models.Session
}

// Handler отдаёт текущую сессию.
type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Tags Session
// @Produce  json
// @Success 200 {object} response.Response
// @Router /session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(h.sessions.Current()))
}
