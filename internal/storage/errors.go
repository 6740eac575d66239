// Package storage содержит общие ошибки хранилищ демо-приложения.
package storage

import "errors"

// ErrUserNotFound возвращается, если пользователь не найден.
var ErrUserNotFound = errors.New("user not found")
