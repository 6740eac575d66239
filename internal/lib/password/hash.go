// Package password реализует хеширование паролей и проверку демо-учётных данных.
package password

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// GetHash принимает пароль и возвращает его bcrypt‑хэш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Credential хранит хэш единственного демо-пароля, открытый текст не сохраняется.
type Credential struct {
	hash string
}

// NewCredential хэширует демо-пароль.
func NewCredential(raw string) (*Credential, error) {
	const op = "password.NewCredential"
	hash, err := GetHash(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Credential{hash: hash}, nil
}

// maxPasswordLen предел bcrypt: байты после него не участвуют в хэше.
const maxPasswordLen = 72

// Matches сообщает, совпадает ли пароль с демо-паролем в точности.
// Пароли длиннее 72 байт и с NUL отклоняются до bcrypt, иначе
// "demo123\x00demo123\x00..." дал бы тот же ключ.
func (c *Credential) Matches(raw string) bool {
	if len(raw) > maxPasswordLen || strings.IndexByte(raw, 0) >= 0 {
		return false
	}
	return CompareHash(c.hash, raw) == nil
}
