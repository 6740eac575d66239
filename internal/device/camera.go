// Package device содержит программные заменители камеры и синтезатора речи.
package device

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
)

var (
	// ErrPermissionDenied доступ к камере запрещён.
	ErrPermissionDenied = errors.New("camera permission denied")
	// ErrAlreadyReleased поток уже освобождён.
	ErrAlreadyReleased = errors.New("stream already released")
)

// Camera выдаёт смоделированные потоки и считает активные.
type Camera struct {
	mu     sync.Mutex
	denied bool
	active map[string]struct{}
}

// NewCamera создает камеру. При denied каждый запрос потока завершается ошибкой.
func NewCamera(denied bool) *Camera {
	return &Camera{
		denied: denied,
		active: make(map[string]struct{}),
	}
}

// Acquire выдаёт новый поток.
func (c *Camera) Acquire(ctx context.Context) (gesture.Stream, error) {
	const op = "device.Camera.Acquire"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.denied {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}
	st := &stream{camera: c, id: uuid.NewString()}
	c.active[st.id] = struct{}{}
	return st, nil
}

// SetDenied меняет разрешение на доступ к камере.
func (c *Camera) SetDenied(denied bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.denied = denied
}

// Active число неосвобождённых потоков.
func (c *Camera) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active)
}

type stream struct {
	camera *Camera
	id     string
}

func (s *stream) ID() string { return s.id }

func (s *stream) Release() error {
	const op = "device.stream.Release"
	s.camera.mu.Lock()
	defer s.camera.mu.Unlock()
	if _, ok := s.camera.active[s.id]; !ok {
		return fmt.Errorf("%s: %w", op, ErrAlreadyReleased)
	}
	delete(s.camera.active, s.id)
	return nil
}
