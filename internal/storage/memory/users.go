// Package memory содержит каталог пользователей, живущий в памяти процесса.
// Каталог заменяет демо-бэкенд и существует ровно столько, сколько процесс.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/magabrotheeeer/gesture-speak/internal/models"
	"github.com/magabrotheeeer/gesture-speak/internal/storage"
)

// Directory каталог пользователей. Порядок добавления сохраняется,
// поиск по email возвращает первого совпавшего.
type Directory struct {
	mu    sync.RWMutex
	users []models.User
}

// NewDirectory создает каталог с начальными пользователями.
func NewDirectory(seed ...models.User) *Directory {
	d := &Directory{users: make([]models.User, 0, len(seed))}
	for _, u := range seed {
		d.users = append(d.users, u.Clone())
	}
	return d
}

// RegisterUser добавляет пользователя и возвращает его ID.
// Уникальность email не проверяется.
func (d *Directory) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.memory.RegisterUser"
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if user.ID == "" {
		return "", fmt.Errorf("%s: empty user id", op)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = append(d.users, user.Clone())
	return user.ID, nil
}

// GetUserByEmail возвращает копию первого пользователя с данным email.
func (d *Directory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.memory.GetUserByEmail"
	return d.find(ctx, op, func(u models.User) bool { return u.Email == email })
}

// UpdatePremium выставляет премиум-доступ до expiry и возвращает обновлённого пользователя.
func (d *Directory) UpdatePremium(ctx context.Context, userID string, expiry time.Time) (*models.User, error) {
	const op = "storage.memory.UpdatePremium"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID != userID {
			continue
		}
		d.users[i].IsPremium = true
		d.users[i].PremiumExpiry = &expiry
		u := d.users[i].Clone()
		return &u, nil
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

// Len возвращает число пользователей в каталоге.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

func (d *Directory) find(ctx context.Context, op string, match func(models.User) bool) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if match(u) {
			c := u.Clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}
