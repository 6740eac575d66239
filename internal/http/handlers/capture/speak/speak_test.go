package speak

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
)

type captureFunc func(ctx context.Context) error

func (f captureFunc) SpeakCurrent(ctx context.Context) error { return f(ctx) }

func TestSpeakHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "spoken", wantCode: http.StatusOK},
		{name: "free user", err: gesture.ErrNotPremium, wantCode: http.StatusForbidden},
		{name: "nothing yet", err: fmt.Errorf("gesture.SpeakCurrent: %w", gesture.ErrNothingToSpeak), wantCode: http.StatusConflict},
		{name: "no synthesizer", err: gesture.ErrSpeechUnsupported, wantCode: http.StatusNotImplemented},
		{name: "synthesizer failure", err: errors.New("audio device lost"), wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(log, captureFunc(func(context.Context) error { return tt.err }))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/capture/speak", nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
