package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-admin/internal/auth"
	"github.com/odyssey-erp/odyssey-admin/internal/i18n"
	"github.com/odyssey-erp/odyssey-admin/internal/session"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
	_ "github.com/odyssey-erp/odyssey-admin/internal/testing/guard"
)

type stubRepo struct {
	user *auth.User
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

type nopAuditor struct{}

func (nopAuditor) Info(context.Context, string, string, string, any)    {}
func (nopAuditor) Error(context.Context, string, string, string, error) {}

func newAuthRouter(t *testing.T, repo auth.Repository, rateLimit int) http.Handler {
	t.Helper()
	hasher, err := auth.NewHasher(auth.SchemeMD5, 0)
	if err != nil {
		t.Fatalf("hasher: %v", err)
	}
	codec, err := session.NewCodec("handler-secret")
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	tr, err := i18n.New("en")
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	service := auth.NewService(repo, hasher, codec, time.Hour, nopAuditor{})
	r := chi.NewRouter()
	r.Route("/auth", auth.NewHandler(nil, service, tr, rateLimit).MountRoutes)
	return r
}

func seededUser(t *testing.T) *auth.User {
	t.Helper()
	hasher, _ := auth.NewHasher(auth.SchemeMD5, 0)
	digest, err := hasher.Hash("Secret.123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &auth.User{ID: 3, Email: "ada@example.com", PasswordHash: digest, FirstName: "Ada", IsActive: true}
}

func postLogin(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:5555"
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestLoginSuccess(t *testing.T) {
	router := newAuthRouter(t, &stubRepo{user: seededUser(t)}, 0)

	res := postLogin(router, `{"email":"ada@example.com","password":"Secret.123"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", res.Code, res.Body.String())
	}
	var body struct {
		Code int          `json:"code"`
		Data auth.Session `json:"data"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Token == "" || body.Data.User.ID != 3 || body.Data.User.FirstName != "Ada" {
		t.Fatalf("unexpected session %+v", body.Data)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newAuthRouter(t, &stubRepo{user: seededUser(t)}, 0)

	res := postLogin(router, `{"email":"ada@example.com","password":"wrong"}`)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Email or password wrong") {
		t.Fatalf("expected auth error message, got %s", res.Body.String())
	}
}

func TestLoginMalformedBody(t *testing.T) {
	router := newAuthRouter(t, &stubRepo{}, 0)

	res := postLogin(router, `{"email":`)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", res.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	router := newAuthRouter(t, &stubRepo{}, 2)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = postLogin(router, `{"email":"x@example.com","password":"y"}`)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", last.Code)
	}
}
