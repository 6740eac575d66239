// Package camera переключает камеру панели распознавания.
package camera

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
)

// NoticeCameraUnavailable сообщение пользователю, когда камера недоступна.
const NoticeCameraUnavailable = "Unable to access camera. Please check permissions."

type Capture interface {
	ToggleCapture(ctx context.Context) (gesture.State, error)
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
// @Summary Включить или выключить камеру
// @Tags Capture
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Камера недоступна"
// @Router /capture/camera [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.capture.camera"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state, err := h.capture.ToggleCapture(r.Context())
	switch {
	case errors.Is(err, gesture.ErrCameraUnavailable):
		log.Error("camera unavailable", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(NoticeCameraUnavailable))
		return
	case err != nil:
		log.Warn("camera toggled with error", sl.Err(err))
	}

	log.Info("camera toggled", slog.String("state", state.String()))
	render.JSON(w, r, response.OKWithData(h.capture.Snapshot()))
}
