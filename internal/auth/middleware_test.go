package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/medrounds/sccprompts/internal/identity"
	"github.com/medrounds/sccprompts/internal/models"
)

type fakeUserSource struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserSource) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, context.Canceled // any error means "not found" to the middleware
}

const testSecret = "test-secret"

func signedToken(t *testing.T, sub string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newTestMiddleware(users *fakeUserSource) *JWTMiddleware {
	return NewJWTMiddleware(testSecret, users)
}

func TestJWTAuthenticateMissingToken(t *testing.T) {
	m := newTestMiddleware(&fakeUserSource{})
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/complaints", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthenticateInvalidToken(t *testing.T) {
	m := newTestMiddleware(&fakeUserSource{})
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthenticateExpiredToken(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserSource{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "doc@example.com"},
	}}
	m := newTestMiddleware(users)
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, userID.String(), time.Now().Add(-time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthenticateUnknownUser(t *testing.T) {
	m := newTestMiddleware(&fakeUserSource{})
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, uuid.NewString(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthenticateSuccess(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserSource{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "doc@example.com"},
	}}
	m := newTestMiddleware(users)

	var gotUser *models.User
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = identity.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, userID.String(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUser == nil || gotUser.ID != userID {
		t.Errorf("authenticated user not attached to context")
	}
}

func TestJWTAuthenticateSkipsWhenIdentityPresent(t *testing.T) {
	// The API key middleware runs first; an attached identity passes through
	// without a token.
	m := newTestMiddleware(&fakeUserSource{})
	called := false
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	user := &models.User{ID: uuid.New()}
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(identity.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Error("request with existing identity must pass through")
	}
}
