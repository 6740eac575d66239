package gesturespeak

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gesture-speak/internal/cache"
	"github.com/magabrotheeeer/gesture-speak/internal/config"
	"github.com/magabrotheeeer/gesture-speak/internal/device"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/jwt"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/password"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
	services "github.com/magabrotheeeer/gesture-speak/internal/services/auth"
	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
	"github.com/magabrotheeeer/gesture-speak/internal/services/view"
	"github.com/magabrotheeeer/gesture-speak/internal/session"
	"github.com/magabrotheeeer/gesture-speak/internal/storage/memory"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server  *http.Server
	logger  *slog.Logger
	capture *gesture.Simulator
	closers []io.Closer
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"
	a := &App{logger: logger}

	slot, err := a.openSlot(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	store := session.New(ctx, logger, slot, cfg.SlotKey)

	credential, err := password.NewCredential(cfg.DemoPassword)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := services.Options{
		LoginDelay:   cfg.LoginDelay,
		UpgradeDelay: cfg.UpgradeDelay,
	}
	if cfg.RabbitMQ.URL != "" {
		notifier, err := a.openNotifier(cfg.RabbitMQ)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		opts.Notifier = notifier
	}
	users := memory.NewDirectory(services.DemoUser(time.Now()))
	logger.Info("user directory seeded", slog.Int("users", users.Len()))
	authService := services.NewAuthService(users, credential, logger, opts)

	a.capture = gesture.NewSimulator(logger, device.NewCamera(cfg.CameraDenied), store, gesture.Options{
		Interval: cfg.Interval,
		Duration: cfg.Duration,
		Speaker:  device.NewLogSpeaker(logger, cfg.Voices),
		OnRecognized: func(r models.GestureResult) {
			logger.Debug("gesture recognized", slog.String("text", r.Text))
		},
	})

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Auth:     authService,
		Sessions: store,
		View:     view.New(),
		Capture:  a.capture,
		Tokens:   jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Limiter:  rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) openSlot(ctx context.Context, cfg *config.Config) (session.Slot, error) {
	if cfg.Storage != config.StorageRedis {
		return cache.NewMemory(), nil
	}
	redis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, redis)
	a.logger.Info("session slot in redis", slog.String("address", cfg.AddressRedis))
	return redis, nil
}

func (a *App) openNotifier(cfg config.RabbitMQ) (*rabbitmq.Notifier, error) {
	conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, conn)

	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, ch)
	a.logger.Info("premium events enabled", slog.String("exchange", cfg.Exchange))
	return rabbitmq.NewNotifier(ch, cfg.Exchange, cfg.RoutingKey), nil
}

// close освобождает камеру и закрывает соединения в обратном порядке.
func (a *App) close() {
	if a.capture != nil {
		if err := a.capture.Close(); err != nil {
			a.logger.Warn("failed to release camera", sl.Err(err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
