// Package services содержит имитацию демо-бэкенда: вход, регистрацию и
// переход на премиум. Все операции отвечают после фиксированной задержки,
// как это делал бы сетевой запрос.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/magabrotheeeer/gesture-speak/internal/lib/password"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/metrics"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
	"github.com/magabrotheeeer/gesture-speak/internal/plans"
	"github.com/magabrotheeeer/gesture-speak/internal/storage"
)

const (
	// DemoUserID идентификатор демо-пользователя.
	DemoUserID = "1"
	// DemoEmail email демо-пользователя.
	DemoEmail = "demo@example.com"
)

// UserRepository описывает контракт каталога пользователей.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdatePremium включает премиум до expiry или возвращает storage.ErrUserNotFound.
	UpdatePremium(ctx context.Context, userID string, expiry time.Time) (*models.User, error)
}

// Notifier получает события об активации премиума.
type Notifier interface {
	PremiumActivated(ctx context.Context, event models.PremiumEvent) error
}

// Options необязательные параметры AuthService.
type Options struct {
	LoginDelay   time.Duration   // Задержка входа и регистрации.
	UpgradeDelay time.Duration   // Задержка перехода на премиум.
	Clock        clockwork.Clock // Часы для задержек и сроков; по умолчанию реальные.
	NewID        func() string   // Генератор ID; по умолчанию uuid.
	Notifier     Notifier        // Может быть nil.
}

// AuthService имитирует сервис аутентификации поверх каталога пользователей.
type AuthService struct {
	users        UserRepository
	credential   *password.Credential
	log          *slog.Logger
	clock        clockwork.Clock
	loginDelay   time.Duration
	upgradeDelay time.Duration
	newID        func() string
	notifier     Notifier
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, credential *password.Credential, log *slog.Logger, opts Options) *AuthService {
	s := &AuthService{
		users:        users,
		credential:   credential,
		log:          log,
		clock:        opts.Clock,
		loginDelay:   opts.LoginDelay,
		upgradeDelay: opts.UpgradeDelay,
		newID:        opts.NewID,
		notifier:     opts.Notifier,
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// DemoUser возвращает демо-пользователя с премиумом на 30 дней от now.
func DemoUser(now time.Time) models.User {
	expiry := now.Add(plans.Term(plans.Monthly))
	return models.User{
		ID:            DemoUserID,
		Email:         DemoEmail,
		IsPremium:     true,
		PremiumExpiry: &expiry,
		Voice:         models.CustomVoice(models.DefaultVoiceSettings),
	}
}

// Login ищет пользователя по email и сверяет пароль с демо-паролем.
//
// Несовпадение не является ошибкой: возвращается (nil, false, nil).
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, bool, error) {
	const op = "services.auth.Login"
	if err := s.wait(ctx, s.loginDelay); err != nil {
		metrics.AuthAttempts.WithLabelValues("login", metrics.ResultError).Inc()
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrUserNotFound) {
		metrics.AuthAttempts.WithLabelValues("login", metrics.ResultNoMatch).Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", metrics.ResultError).Inc()
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if !s.credential.Matches(rawPassword) {
		metrics.AuthAttempts.WithLabelValues("login", metrics.ResultNoMatch).Inc()
		return nil, false, nil
	}

	metrics.AuthAttempts.WithLabelValues("login", metrics.ResultOK).Inc()
	return user, true, nil
}

// Register создает пользователя без премиума с голосом по умолчанию.
// Пароль не сохраняется, уникальность email не проверяется.
func (s *AuthService) Register(ctx context.Context, email, _ string) (*models.User, error) {
	const op = "services.auth.Register"
	if err := s.wait(ctx, s.loginDelay); err != nil {
		metrics.AuthAttempts.WithLabelValues("register", metrics.ResultError).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:        s.newID(),
		Email:     email,
		IsPremium: false,
		Voice:     models.DefaultVoice(),
	}
	if _, err := s.users.RegisterUser(ctx, user); err != nil {
		metrics.AuthAttempts.WithLabelValues("register", metrics.ResultError).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.AuthAttempts.WithLabelValues("register", metrics.ResultOK).Inc()
	s.log.Info("user registered", slog.String("user_id", user.ID))
	return &user, nil
}

// Upgrade включает премиум: на 365 дней для годового плана, на 30 дней для остальных.
//
// Если пользователь не найден, возвращается (nil, false, nil) и ничего не меняется.
func (s *AuthService) Upgrade(ctx context.Context, userID, planID string) (*models.User, bool, error) {
	const op = "services.auth.Upgrade"
	if err := s.wait(ctx, s.upgradeDelay); err != nil {
		metrics.Upgrades.WithLabelValues(planID, metrics.ResultError).Inc()
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	expiry := s.clock.Now().Add(plans.Term(planID))
	user, err := s.users.UpdatePremium(ctx, userID, expiry)
	if errors.Is(err, storage.ErrUserNotFound) {
		metrics.Upgrades.WithLabelValues(planID, metrics.ResultNoMatch).Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.Upgrades.WithLabelValues(planID, metrics.ResultError).Inc()
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	metrics.Upgrades.WithLabelValues(planID, metrics.ResultOK).Inc()

	if s.notifier != nil {
		event := models.PremiumEvent{UserID: user.ID, Email: user.Email, PlanID: planID, Expiry: expiry}
		if err := s.notifier.PremiumActivated(ctx, event); err != nil {
			s.log.Warn("failed to publish premium event", sl.Op(op), sl.Err(err))
		}
	}
	return user, true, nil
}

// wait имитирует сетевую задержку, не блокируя вызывающего дольше ctx.
func (s *AuthService) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := s.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
