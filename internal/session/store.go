// Package session хранит текущую сессию демо-приложения и сохраняет её
// целиком в слот после каждого изменения.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

// DefaultSlotKey имя слота, под которым сессия хранится фронтендом.
const DefaultSlotKey = "authState"

// ErrNotSignedIn возвращается при обновлении пользователя, который не вошёл в систему.
var ErrNotSignedIn = errors.New("user is not signed in")

// Slot хранилище сериализованной сессии.
type Slot interface {
	// Load возвращает данные по ключу; found == false, если ключа нет.
	Load(ctx context.Context, key string) (data []byte, found bool, err error)
	// Save перезаписывает данные по ключу.
	Save(ctx context.Context, key string, data []byte) error
}

// Store владеет текущей сессией. Изменения применяются последовательно,
// запись в слот происходит под той же блокировкой.
type Store struct {
	mu      sync.RWMutex
	slot    Slot
	key     string
	log     *slog.Logger
	current models.Session
}

// New создаёт Store и восстанавливает сессию из слота. Ошибки чтения и
// разбора логируются, в этом случае используется пустая сессия.
func New(ctx context.Context, log *slog.Logger, slot Slot, key string) *Store {
	if key == "" {
		key = DefaultSlotKey
	}
	s := &Store{
		slot: slot,
		key:  key,
		log:  log,
	}
	s.current = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) models.Session {
	const op = "session.Store.load"
	log := s.log.With(sl.Op(op), slog.String("key", s.key))

	data, found, err := s.slot.Load(ctx, s.key)
	if err != nil {
		log.Error("failed to read saved session", sl.Err(err))
		return models.EmptySession()
	}
	if !found {
		log.Debug("no saved session")
		return models.EmptySession()
	}

	restored, err := Decode(data)
	if err != nil {
		log.Error("error parsing saved session", sl.Err(err))
		return models.EmptySession()
	}
	log.Info("session restored", slog.Bool("authenticated", restored.IsAuthenticated))
	return restored
}

// Current возвращает копию текущей сессии.
func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// SetLoggedIn делает user текущим пользователем.
func (s *Store) SetLoggedIn(ctx context.Context, user models.User) error {
	return s.mutate(ctx, "session.Store.SetLoggedIn", func(models.Session) (models.Session, error) {
		u := user.Clone()
		return models.NewSession(&u), nil
	})
}

// SetLoggedOut сбрасывает сессию в пустую.
func (s *Store) SetLoggedOut(ctx context.Context) error {
	return s.mutate(ctx, "session.Store.SetLoggedOut", func(models.Session) (models.Session, error) {
		return models.EmptySession(), nil
	})
}

// SetUpgraded заменяет данные текущего пользователя после перехода на премиум.
// Возвращает ErrNotSignedIn, если user не совпадает с текущим пользователем.
func (s *Store) SetUpgraded(ctx context.Context, user models.User) error {
	return s.mutate(ctx, "session.Store.SetUpgraded", func(cur models.Session) (models.Session, error) {
		if cur.User == nil || cur.User.ID != user.ID {
			return cur, ErrNotSignedIn
		}
		u := user.Clone()
		next := models.NewSession(&u)
		next.IsLoading = cur.IsLoading
		return next, nil
	})
}

// SetLoading выставляет признак ожидания ответа.
func (s *Store) SetLoading(ctx context.Context, loading bool) error {
	return s.mutate(ctx, "session.Store.SetLoading", func(cur models.Session) (models.Session, error) {
		cur.IsLoading = loading
		return cur, nil
	})
}

// mutate применяет fn и сохраняет результат. Если запись в слот не удалась,
// сессия в памяти всё равно обновлена, ошибка возвращается вызывающему.
func (s *Store) mutate(ctx context.Context, op string, fn func(models.Session) (models.Session, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current.Clone())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.current = next

	data, err := Encode(next)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.slot.Save(ctx, s.key, data); err != nil {
		s.log.Error("failed to persist session", sl.Op(op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
