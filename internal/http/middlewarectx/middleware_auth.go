// Package middlewarectx содержит HTTP middleware: проверку JWT, привязку
// токена к текущей сессии, доступ только для премиум и ограничение частоты.
//
// JWTMiddleware проверяет заголовок Authorization и кладёт в контекст
// идентификатор и почту пользователя. При ошибке отвечает 401.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID ключ идентификатора пользователя в контексте
	UserID Key = "uid"
	// Email ключ почты пользователя в контексте
	Email Key = "email"
)

// UserIDFrom достаёт идентификатор пользователя, положенный JWTMiddleware.
func UserIDFrom(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserID).(string)
	return uid, ok && uid != ""
}

// JWTMiddleware возвращает middleware, который проверяет JWT в заголовке Authorization.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
