package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gesture-speak/internal/http/response"
)

// SessionUserMiddleware пропускает запрос, только если владелец токена
// совпадает с пользователем текущей сессии. После выхода старые токены
// перестают действовать.
func SessionUserMiddleware(log *slog.Logger, sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFrom(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			user := sessions.Current().User
			if user == nil || user.ID != userID {
				log.Warn("token does not belong to current session", slog.String("uid", userID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session expired, please sign in again"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PremiumMiddleware пропускает только премиум-пользователей.
func PremiumMiddleware(log *slog.Logger, sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := sessions.Current().User
			if user == nil || !user.IsPremium {
				log.Info("premium feature requested by free user")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("premium subscription required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
