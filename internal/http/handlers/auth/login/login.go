// Package login реализует HTTP-обработчик входа по email и паролю.
//
// При успехе пользователь становится текущим в сессии, окно входа
// закрывается, клиенту возвращаются данные пользователя и bearer-токен.
// Несовпадение учётных данных и внутренняя ошибка дают одно и то же
// сообщение.
package login

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

// FailureMessage общее сообщение о неудачном входе.
const FailureMessage = "Something went wrong. Please check your details and try again."

// Request входные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service бизнес-логика входа.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, bool, error)
}

// Sessions хранилище текущей сессии.
type Sessions interface {
	SetLoading(ctx context.Context, loading bool) error
	SetLoggedIn(ctx context.Context, user models.User) error
}

// Navigator переключает панели экрана.
type Navigator interface {
	LoggedIn() view.Flags
}

// TokenMaker выпускает bearer-токен.
type TokenMaker interface {
	GenerateToken(userID, email string) (string, error)
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log      *slog.Logger
	auth     Service
	sessions Sessions
	nav      Navigator
	tokens   TokenMaker
	validate *validator.Validate
}

// New создает Handler.
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
// @Summary Вход пользователя
// @Description Проверяет email и пароль, делает пользователя текущим в сессии и выдаёт bearer-токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	user, ok, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		h.fail(w, r, log, http.StatusInternalServerError)
		return
	}
	if !ok {
		log.Info("credentials do not match", slog.String("email", req.Email))
		h.fail(w, r, log, http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		h.fail(w, r, log, http.StatusInternalServerError)
		return
	}

	if err := h.sessions.SetLoggedIn(r.Context(), *user); err != nil {
		log.Warn("failed to persist session", sl.Err(err))
	}
	h.nav.LoggedIn()

	log.Info("login success", slog.String("user_id", user.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user":  user,
		"token": token,
	}))
}

// fail снимает признак ожидания и отвечает общим сообщением.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int) {
	if err := h.sessions.SetLoading(context.WithoutCancel(r.Context()), false); err != nil {
		log.Warn("failed to persist session", sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, response.Error(FailureMessage))
}
