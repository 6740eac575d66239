package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gesture-speak/internal/cache"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
	"github.com/magabrotheeeer/gesture-speak/internal/services/view"
	"github.com/magabrotheeeer/gesture-speak/internal/session"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type tokenStub struct{}

func (tokenStub) GenerateToken(userID, _ string) (string, error) { return "tok-" + userID, nil }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setup(t *testing.T) (*Handler, *AuthServiceMock, *session.Store, *view.Router) {
	t.Helper()
	authMock := new(AuthServiceMock)
	store := session.New(context.Background(), newNoopLogger(), cache.NewMemory(), session.DefaultSlotKey)
	nav := view.New()
	nav.OpenLogin()
	return New(newNoopLogger(), authMock, store, nav, tokenStub{}), authMock, store, nav
}

func post(t *testing.T, h http.Handler, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(raw)))

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return rec, got
}

func TestRegisterHandler_Success(t *testing.T) {
	handler, authMock, store, nav := setup(t)
	newUser := &models.User{ID: "abc", Email: "new@example.com", Voice: models.DefaultVoice()}
	authMock.On("Register", mock.Anything, "new@example.com", "secret").Return(newUser, nil).Once()

	rec, got := post(t, handler, Request{Email: "new@example.com", Password: "secret"})

	assert.Equal(t, http.StatusOK, rec.Code)
	data := got["data"].(map[string]any)
	assert.Equal(t, "tok-abc", data["token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, false, user["isPremium"])
	assert.NotContains(t, user, "voiceSettings")

	current := store.Current()
	require.NotNil(t, current.User)
	assert.Equal(t, "abc", current.User.ID)
	assert.False(t, nav.Flags().LoginOpen)
	authMock.AssertExpectations(t)
}

func TestRegisterHandler_Failures(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		handler, _, _, _ := setup(t)
		rec, got := post(t, handler, Request{Email: "nope", Password: "secret"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "field Email must be a valid email", got["error"])
	})

	t.Run("service error", func(t *testing.T) {
		handler, authMock, store, nav := setup(t)
		authMock.On("Register", mock.Anything, "new@example.com", "secret").
			Return(nil, errors.New("boom")).Once()

		rec, got := post(t, handler, Request{Email: "new@example.com", Password: "secret"})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, failureMessage, got["error"])
		assert.Equal(t, models.EmptySession(), store.Current())
		assert.True(t, nav.Flags().LoginOpen)
	})
}
