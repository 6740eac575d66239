// Package list отдаёт каталог тарифов.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

type Catalogue func() []models.Plan

type Handler struct {
	log   *slog.Logger
	plans Catalogue
}

func New(log *slog.Logger, plans Catalogue) *Handler {
	return &Handler{
		log:   log,
		plans: plans,
	}
}

// ServeHTTP godoc
// @Summary Тарифы премиум
// @Tags Plans
// @Produce  json
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(h.plans()))
}
