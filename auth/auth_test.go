package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func sessionCookie(t *testing.T, uid uint) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	CreateSession(rec, uid)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, 42))

	uid, ok := ParseSession(req)
	require.True(t, ok)
	require.EqualValues(t, 42, uid)
}

func TestParseSession_RejectsTampering(t *testing.T) {
	c := sessionCookie(t, 42)
	c.Value = "43" + c.Value[2:]
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)

	_, ok := ParseSession(req)
	require.False(t, ok)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "garbage"})
	_, ok = ParseSession(req)
	require.False(t, ok)
}

func TestParseSession_SecretRotation(t *testing.T) {
	c := sessionCookie(t, 7)
	SetSecret("rotated")
	t.Cleanup(func() { SetSecret("devsessionsecret") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	_, ok := ParseSession(req)
	require.False(t, ok)
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/projects/mine", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login?next=%2Fprojects%2Fmine", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/projects/mine", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/projects/mine", nil)
	req.AddCookie(sessionCookie(t, 1))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAuth_Verifier(t *testing.T) {
	SetUserVerifier(func(_ context.Context, uid uint) bool { return uid == 1 })
	t.Cleanup(func() { SetUserVerifier(nil) })

	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(sessionCookie(t, 2))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Values("Set-Cookie")[0], "session=;")
}
