package recording

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
)

type captureStub struct {
	state gesture.State
	err   error
}

func (c *captureStub) ToggleRecording() (gesture.State, error) { return c.state, c.err }

func (c *captureStub) Snapshot() gesture.Snapshot { return gesture.Snapshot{State: c.state} }

func TestRecordingHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		stub     *captureStub
		wantCode int
		wantBody string
	}{
		{
			name:     "started",
			stub:     &captureStub{state: gesture.StateEmitting},
			wantCode: http.StatusOK,
			wantBody: `{"status":"OK","data":{"state":"emitting"}}`,
		},
		{
			name:     "camera off",
			stub:     &captureStub{err: fmt.Errorf("gesture.StartEmitting: %w", gesture.ErrCameraOff)},
			wantCode: http.StatusConflict,
			wantBody: `{"status":"Error","error":"turn the camera on first"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			New(log, tt.stub).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/capture/recording", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
