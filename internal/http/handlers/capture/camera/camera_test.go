package camera

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gesture-speak/internal/device"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
	"github.com/magabrotheeeer/gesture-speak/internal/services/gesture"
)

type sessionStub struct{}

func (sessionStub) Current() models.Session { return models.EmptySession() }

func toggle(t *testing.T, h http.Handler) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/capture/camera", nil))
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return rec.Code, got
}

func TestCameraHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cam := device.NewCamera(false)
	sim := gesture.NewSimulator(log, cam, sessionStub{}, gesture.Options{})
	t.Cleanup(func() { _ = sim.Close() })
	h := New(log, sim)

	code, got := toggle(t, h)
	assert.Equal(t, http.StatusOK, code)
	data := got["data"].(map[string]any)
	assert.Equal(t, "capturing", data["state"])
	assert.NotEmpty(t, data["stream_id"])
	assert.Equal(t, 1, cam.Active())

	code, got = toggle(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "idle", got["data"].(map[string]any)["state"])
	assert.Equal(t, 0, cam.Active())
}

func TestCameraHandler_Denied(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sim := gesture.NewSimulator(log, device.NewCamera(true), sessionStub{}, gesture.Options{})
	h := New(log, sim)

	code, got := toggle(t, h)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, NoticeCameraUnavailable, got["error"])
	assert.Equal(t, gesture.StateIdle, sim.State())
}
