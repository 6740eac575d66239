// Package upgrade реализует переход текущего пользователя на премиум.
//
// План проверяется по каталогу, затем сервис продлевает премиум, сессия
// получает обновлённого пользователя, а панель тарифов скрывается.
package upgrade

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gesture-speak/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
	"github.com/magabrotheeeer/gesture-speak/internal/services/view"
	"github.com/magabrotheeeer/gesture-speak/internal/session"
)

// Request выбранный тариф.
type Request struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// Service бизнес-логика оплаты.
type Service interface {
	Upgrade(ctx context.Context, userID, planID string) (*models.User, bool, error)
}

// Sessions хранилище текущей сессии.
type Sessions interface {
	SetUpgraded(ctx context.Context, user models.User) error
}

// Navigator скрывает тарифы после оплаты.
type Navigator interface {
	Upgraded() view.Flags
}

// PlanFinder ищет тариф в каталоге.
type PlanFinder func(id string) (models.Plan, bool)

type Handler struct {
	log      *slog.Logger
	auth     Service
	sessions Sessions
	nav      Navigator
	findPlan PlanFinder
	validate *validator.Validate
}

func New(log *slog.Logger, auth Service, sessions Sessions, nav Navigator, findPlan PlanFinder) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		sessions: sessions,
		nav:      nav,
		findPlan: findPlan,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Переход на премиум
// @Description Включает премиум на 30 дней для monthly или на 365 дней для yearly.
// @Tags Premium
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Тариф"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /upgrade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.upgrade"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if _, ok := h.findPlan(req.PlanID); !ok {
		log.Error("unknown plan", slog.String("plan_id", req.PlanID))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("unknown plan"))
		return
	}

	user, found, err := h.auth.Upgrade(r.Context(), userID, req.PlanID)
	if err != nil {
		log.Error("upgrade failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("upgrade failed, please try again"))
		return
	}
	if !found {
		log.Warn("user not found", slog.String("user_id", userID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}

	err = h.sessions.SetUpgraded(r.Context(), *user)
	switch {
	case errors.Is(err, session.ErrNotSignedIn):
		log.Warn("session changed during upgrade", slog.String("user_id", userID))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("session changed, please sign in again"))
		return
	case err != nil:
		log.Warn("failed to persist session", sl.Err(err))
	}
	flags := h.nav.Upgraded()

	log.Info("premium activated", slog.String("user_id", user.ID), slog.String("plan_id", req.PlanID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": user,
		"view": flags,
	}))
}
