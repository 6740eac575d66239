package middlewarectx

import (
	"github.com/magabrotheeeer/gesture-speak/internal/lib/jwt"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

// TokenParser проверяет bearer-токен.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// SessionReader возвращает текущую сессию.
type SessionReader interface {
	Current() models.Session
}
