package state

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
)

type Capture interface {
	Snapshot() gesture.Snapshot
}

// Handler отдаёт состояние камеры и последний распознанный текст.
type Handler struct {
	log     *slog.Logger
	capture Capture
}

func New(log *slog.Logger, capture Capture) *Handler {
	return &Handler{
		log:     log,
		capture: capture,
	}
}

// ServeHTTP godoc
// @Summary Состояние распознавания
// @Tags Capture
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response
// @Router /capture [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(h.capture.Snapshot()))
}
