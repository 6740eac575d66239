// Package recording запускает и останавливает сеанс распознавания.
package recording

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
)

type Capture interface {
	ToggleRecording() (gesture.State, error)
	Snapshot() gesture.Snapshot
}

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
// @Summary Начать или остановить запись
// @Tags Capture
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Камера выключена"
// @Router /capture/recording [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.capture.recording"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state, err := h.capture.ToggleRecording()
	if errors.Is(err, gesture.ErrCameraOff) {
		log.Error("recording requested with camera off", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("turn the camera on first"))
		return
	}

	log.Info("recording toggled", slog.String("state", state.String()))
	render.JSON(w, r, response.OKWithData(h.capture.Snapshot()))
}
