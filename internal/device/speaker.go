package device

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
)

// LogSpeaker "озвучивает" текст записью в лог.
type LogSpeaker struct {
	log    *slog.Logger
	voices []string
}

// NewLogSpeaker создает синтезатор с заданным списком установленных голосов.
func NewLogSpeaker(log *slog.Logger, voices []string) *LogSpeaker {
	return &LogSpeaker{
		log:    log,
		voices: append([]string(nil), voices...),
	}
}

// Voices возвращает копию списка голосов.
func (s *LogSpeaker) Voices() []string {
	return append([]string(nil), s.voices...)
}

// Speak пишет реплику в лог.
func (s *LogSpeaker) Speak(ctx context.Context, u gesture.Utterance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("speaking",
		slog.String("text", u.Text),
		slog.Float64("pitch", u.Pitch),
		slog.Float64("rate", u.Rate),
		slog.String("voice", u.Voice),
	)
	return nil
}
