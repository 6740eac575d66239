// Package gesture имитирует распознавание жестов: пока камера включена и идёт
// запись, по таймеру выбирается случайная фраза из фиксированного списка и
// публикуется как распознанный текст. Для премиум-пользователей фраза
// дополнительно озвучивается.
package gesture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/magabrotheeeer/gesture-speak/internal/lib/sl"
	"github.com/magabrotheeeer/gesture-speak/internal/metrics"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

const (
	// DefaultInterval период выдачи фраз.
	DefaultInterval = 3 * time.Second
	// DefaultDuration длительность одного сеанса записи.
	DefaultDuration = 15 * time.Second

	simulatedConfidence = 0.95
)

var (
	// ErrCameraUnavailable камера недоступна, например, нет разрешения.
	ErrCameraUnavailable = errors.New("unable to access camera")
	// ErrCameraOff запись невозможна при выключенной камере.
	ErrCameraOff = errors.New("camera is off")
	// ErrNotPremium озвучивание доступно только премиум-пользователям.
	ErrNotPremium = errors.New("speech output requires premium")
	// ErrNothingToSpeak распознанного текста ещё нет.
	ErrNothingToSpeak = errors.New("no recognized text yet")
	// ErrSpeechUnsupported синтез речи недоступен.
	ErrSpeechUnsupported = errors.New("speech synthesis is not supported")
)

// State состояние симулятора.
type State int

const (
	// StateIdle камера выключена.
	StateIdle State = iota
	// StateCapturing камера включена, запись не идёт.
	StateCapturing
	// StateEmitting камера включена, фразы выдаются по таймеру.
	StateEmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateEmitting:
		return "emitting"
	default:
		return "unknown"
	}
}

// MarshalText сериализует состояние строкой.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Stream захваченный поток камеры.
type Stream interface {
	ID() string
	Release() error
}

// Camera выдаёт поток камеры.
type Camera interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Speaker озвучивает текст.
type Speaker interface {
	// Voices возвращает имена установленных голосов.
	Voices() []string
	Speak(ctx context.Context, u Utterance) error
}

// SessionSource возвращает текущую сессию.
type SessionSource interface {
	Current() models.Session
}

// Options необязательные параметры Simulator.
type Options struct {
	Interval time.Duration
	Duration time.Duration
	Clock    clockwork.Clock
	// Speaker может быть nil: озвучивание тогда молча пропускается.
	Speaker Speaker
	// Pick возвращает индекс в [0, n); по умолчанию равномерно случайный.
	Pick func(n int) int
	// OnRecognized вызывается после каждой выданной фразы из горутины
	// симулятора. Из него нельзя вызывать методы Simulator.
	OnRecognized func(models.GestureResult)
}

// Snapshot состояние панели камеры.
type Snapshot struct {
	State          State                 `json:"state"`
	StreamID       string                `json:"stream_id,omitempty"`
	LastRecognized *models.GestureResult `json:"last_recognized,omitempty"`
}

// Simulator конечный автомат idle -> capturing -> emitting.
//
// Поток камеры принадлежит симулятору эксклюзивно, пока камера включена.
// Каждый сеанс записи владеет одним emission, в котором находятся и
// периодический тикер, и таймер отсечки; остановка записи гасит оба.
type Simulator struct {
	mu           sync.Mutex
	log          *slog.Logger
	camera       Camera
	speaker      Speaker
	sessions     SessionSource
	clock        clockwork.Clock
	interval     time.Duration
	duration     time.Duration
	pick         func(n int) int
	onRecognized func(models.GestureResult)

	state  State
	stream Stream
	run    *emission
	last   *models.GestureResult
}

type emission struct {
	ticker clockwork.Ticker
	cutoff clockwork.Timer
	cancel context.CancelFunc
	done   chan struct{}
}

func (e *emission) stop() {
	e.ticker.Stop()
	e.cutoff.Stop()
	e.cancel()
}

// NewSimulator создает симулятор в состоянии idle.
func NewSimulator(log *slog.Logger, camera Camera, sessions SessionSource, opts Options) *Simulator {
	s := &Simulator{
		log:          log,
		camera:       camera,
		speaker:      opts.Speaker,
		sessions:     sessions,
		clock:        opts.Clock,
		interval:     opts.Interval,
		duration:     opts.Duration,
		pick:         opts.Pick,
		onRecognized: opts.OnRecognized,
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.duration <= 0 {
		s.duration = DefaultDuration
	}
	if s.pick == nil {
		s.pick = rand.IntN
	}
	return s
}

// State возвращает текущее состояние.
func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot возвращает состояние и последний распознанный текст.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{State: s.state}
	if s.stream != nil {
		snap.StreamID = s.stream.ID()
	}
	if s.last != nil {
		last := *s.last
		snap.LastRecognized = &last
	}
	return snap
}

// EnableCapture включает камеру. Ранее удерживаемый поток освобождается до
// запроса нового. При ошибке камеры симулятор остаётся в idle. Ошибка
// освобождения старого потока возвращается и при успешном захвате нового.
func (s *Simulator) EnableCapture(ctx context.Context) error {
	s.mu.Lock()
	done, err := s.enableLocked(ctx)
	s.mu.Unlock()
	waitDone(done)
	return err
}

// DisableCapture останавливает запись и освобождает поток камеры.
// Повторный вызов ничего не делает.
func (s *Simulator) DisableCapture() error {
	s.mu.Lock()
	done, err := s.teardownLocked()
	s.mu.Unlock()
	waitDone(done)
	return err
}

// ToggleCapture переключает камеру и возвращает новое состояние.
func (s *Simulator) ToggleCapture(ctx context.Context) (State, error) {
	s.mu.Lock()
	var (
		done <-chan struct{}
		err  error
	)
	if s.state == StateIdle {
		done, err = s.enableLocked(ctx)
	} else {
		done, err = s.teardownLocked()
	}
	state := s.state
	s.mu.Unlock()
	waitDone(done)
	return state, err
}

// StartEmitting начинает сеанс записи. Требует включённой камеры.
func (s *Simulator) StartEmitting() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

// StopEmitting завершает сеанс записи, оставляя камеру включённой.
func (s *Simulator) StopEmitting() {
	s.mu.Lock()
	done := s.stopEmissionLocked()
	s.mu.Unlock()
	waitDone(done)
}

// ToggleRecording переключает запись и возвращает новое состояние.
func (s *Simulator) ToggleRecording() (State, error) {
	s.mu.Lock()
	var (
		done <-chan struct{}
		err  error
	)
	if s.state == StateEmitting {
		done = s.stopEmissionLocked()
	} else {
		err = s.startLocked()
	}
	state := s.state
	s.mu.Unlock()
	waitDone(done)
	return state, err
}

// SpeakCurrent озвучивает последний распознанный текст.
func (s *Simulator) SpeakCurrent(ctx context.Context) error {
	const op = "gesture.SpeakCurrent"
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	user := s.sessions.Current().User
	switch {
	case user == nil || !user.IsPremium:
		return fmt.Errorf("%s: %w", op, ErrNotPremium)
	case s.speaker == nil:
		return fmt.Errorf("%s: %w", op, ErrSpeechUnsupported)
	case last == nil:
		return fmt.Errorf("%s: %w", op, ErrNothingToSpeak)
	}
	if err := s.speak(ctx, last.Text, user.Voice); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close освобождает все ресурсы; вызывается при уходе с панели камеры.
func (s *Simulator) Close() error {
	return s.DisableCapture()
}

func (s *Simulator) enableLocked(ctx context.Context) (<-chan struct{}, error) {
	const op = "gesture.EnableCapture"
	done, releaseErr := s.teardownLocked()

	stream, err := s.camera.Acquire(ctx)
	if err != nil {
		s.log.Error("error accessing camera", sl.Op(op), sl.Err(err))
		return done, errors.Join(fmt.Errorf("%s: %w: %w", op, ErrCameraUnavailable, err), releaseErr)
	}
	s.stream = stream
	s.state = StateCapturing
	metrics.CaptureActive.Set(1)
	s.log.Info("camera on", slog.String("stream_id", stream.ID()))
	// Новый поток захвачен, но ошибка освобождения старого всё равно возвращается.
	return done, releaseErr
}

func (s *Simulator) teardownLocked() (<-chan struct{}, error) {
	const op = "gesture.DisableCapture"
	done := s.stopEmissionLocked()

	var err error
	if s.stream != nil {
		id := s.stream.ID()
		if releaseErr := s.stream.Release(); releaseErr != nil {
			s.log.Warn("failed to release camera stream", sl.Op(op), sl.Err(releaseErr))
			err = fmt.Errorf("%s: %w", op, releaseErr)
		}
		s.stream = nil
		metrics.CaptureActive.Set(0)
		s.log.Info("camera off", slog.String("stream_id", id))
	}
	s.state = StateIdle
	return done, err
}

func (s *Simulator) startLocked() error {
	const op = "gesture.StartEmitting"
	switch s.state {
	case StateIdle:
		return fmt.Errorf("%s: %w", op, ErrCameraOff)
	case StateEmitting:
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	run := &emission{
		ticker: s.clock.NewTicker(s.interval),
		cutoff: s.clock.NewTimer(s.duration),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.run = run
	s.state = StateEmitting
	go s.emit(ctx, run)
	s.log.Info("recording started", slog.Duration("interval", s.interval), slog.Duration("duration", s.duration))
	return nil
}

// stopEmissionLocked отсоединяет текущий emission и гасит его таймеры.
// Возвращает канал завершения горутины; ждать его нужно без блокировки.
func (s *Simulator) stopEmissionLocked() <-chan struct{} {
	run := s.run
	if run == nil {
		return nil
	}
	s.run = nil
	run.stop()
	if s.state == StateEmitting {
		s.state = StateCapturing
	}
	s.log.Info("recording stopped")
	return run.done
}

func (s *Simulator) emit(ctx context.Context, run *emission) {
	defer close(run.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-run.cutoff.Chan():
			s.mu.Lock()
			if s.run == run {
				s.run = nil
				run.stop()
				s.state = StateCapturing
				s.log.Info("recording window elapsed")
			}
			s.mu.Unlock()
			return
		case <-run.ticker.Chan():
			s.recognize(ctx, run)
		}
	}
}

func (s *Simulator) recognize(ctx context.Context, run *emission) {
	s.mu.Lock()
	if s.run != run {
		s.mu.Unlock()
		return
	}
	result := models.GestureResult{
		Text:       Phrases[s.pick(len(Phrases))],
		Confidence: simulatedConfidence,
		Timestamp:  s.clock.Now(),
	}
	s.last = &result
	s.mu.Unlock()

	spoken := false
	if user := s.sessions.Current().User; user != nil && user.IsPremium && s.speaker != nil {
		spoken = s.speak(ctx, result.Text, user.Voice) == nil
	}
	metrics.PhrasesEmitted.WithLabelValues(strconv.FormatBool(spoken)).Inc()

	if s.onRecognized != nil {
		s.onRecognized(result)
	}
}

func (s *Simulator) speak(ctx context.Context, text string, voice models.Voice) error {
	const op = "gesture.speak"
	u := NewUtterance(text, voice, s.speaker.Voices())
	if err := s.speaker.Speak(ctx, u); err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Warn("speech synthesis failed", sl.Op(op), sl.Err(err))
		}
		return err
	}
	return nil
}

func waitDone(done <-chan struct{}) {
	if done != nil {
		<-done
	}
}
