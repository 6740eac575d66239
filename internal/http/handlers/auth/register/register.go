// Package register реализует HTTP-обработчик регистрации. Новый пользователь
// сразу становится текущим в сессии.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
	"github.com/magabrotheeeer/gesture-speak/internal/services/view"
)

const failureMessage = "Something went wrong. Please check your details and try again."

// Request входные данные для регистрации
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Service interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
}

type Sessions interface {
	SetLoading(ctx context.Context, loading bool) error
	SetLoggedIn(ctx context.Context, user models.User) error
}

type Navigator interface {
	LoggedIn() view.Flags
}

type TokenMaker interface {
	GenerateToken(userID, email string) (string, error)
}

type Handler struct {
	log      *slog.Logger
	auth     Service
	sessions Sessions
	nav      Navigator
	tokens   TokenMaker
	validate *validator.Validate
}

func New(log *slog.Logger, auth Service, sessions Sessions, nav Navigator, tokens TokenMaker) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		sessions: sessions,
		nav:      nav,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	if err := h.sessions.SetLoading(r.Context(), true); err != nil {
		log.Warn("failed to persist session", sl.Err(err))
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		h.fail(w, r, log)
		return
	}
	token, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		h.fail(w, r, log)
		return
	}

	if err := h.sessions.SetLoggedIn(r.Context(), *user); err != nil {
		log.Warn("failed to persist session", sl.Err(err))
	}
	h.nav.LoggedIn()

	log.Info("user registered and signed in", slog.String("user_id", user.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user":  user,
		"token": token,
	}))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	if err := h.sessions.SetLoading(context.WithoutCancel(r.Context()), false); err != nil {
		log.Warn("failed to persist session", sl.Err(err))
	}
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, response.Error(failureMessage))
}
