// Package speak озвучивает последний распознанный текст по запросу.
package speak

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

type Capture interface {
	SpeakCurrent(ctx context.Context) error
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
// @Summary Озвучить текст
// @Tags Capture
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 501 {object} response.ErrorResponse
// @Router /capture/speak [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.capture.speak"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	err := h.capture.SpeakCurrent(r.Context())
	switch {
	case err == nil:
		render.JSON(w, r, response.OK())
		return
	case errors.Is(err, gesture.ErrNotPremium):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("premium subscription required"))
	case errors.Is(err, gesture.ErrNothingToSpeak):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("nothing recognized yet"))
	case errors.Is(err, gesture.ErrSpeechUnsupported):
		render.Status(r, http.StatusNotImplemented)
		render.JSON(w, r, response.Error("speech synthesis is not supported"))
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("speech synthesis failed"))
	}
	log.Info("speech request rejected", sl.Err(err))
}
