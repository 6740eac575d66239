package middlewarectx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gesture-speak/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

type sessionStub struct {
	session models.Session
}

func (s sessionStub) Current() models.Session { return s.session }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func withUID(r *http.Request, uid string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middlewarectx.UserID, uid))
}

func TestSessionUserMiddleware(t *testing.T) {
	demo := models.NewSession(&models.User{ID: "1", Email: "demo@example.com"})

	tests := []struct {
		name     string
		session  models.Session
		uid      string
		wantCode int
	}{
		{name: "matching user", session: demo, uid: "1", wantCode: http.StatusNoContent},
		{name: "other user", session: demo, uid: "2", wantCode: http.StatusUnauthorized},
		{name: "signed out", session: models.EmptySession(), uid: "1", wantCode: http.StatusUnauthorized},
		{name: "no uid in context", session: demo, wantCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := middlewarectx.SessionUserMiddleware(newNoopLogger(), sessionStub{tt.session})(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/capture", nil)
			if tt.uid != "" {
				req = withUID(req, tt.uid)
			}
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestPremiumMiddleware(t *testing.T) {
	free := models.NewSession(&models.User{ID: "2", Email: "free@example.com"})
	premium := models.NewSession(&models.User{ID: "1", Email: "demo@example.com", IsPremium: true})

	for session, want := range map[*models.Session]int{
		&free:    http.StatusForbidden,
		&premium: http.StatusNoContent,
	} {
		mw := middlewarectx.PremiumMiddleware(newNoopLogger(), sessionStub{*session})(okHandler())
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/capture/speak", nil))
		assert.Equal(t, want, rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	mw := middlewarectx.RateLimitMiddleware(newNoopLogger(), rate.NewLimiter(rate.Every(1<<62), 2))(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
