package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skilltree_backend/internal/config"
	"skilltree_backend/internal/model"
	"skilltree_backend/internal/util"

	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret",
			ExpireTime: time.Hour,
		},
		Session: config.SessionConfig{
			ExpireTime: 7 * 24 * time.Hour,
			CookieName: "session_token",
		},
	}
}

func newAuthService(env *testEnv, provider *ProviderClient) *AuthService {
	return NewAuthService(env.users, env.sessions, provider, testConfig(), zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, nil)

	result, err := svc.Register("Alice", "alice@test.io", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Token == "" {
		t.Error("register should return a token")
	}
	if result.User.Level != 1 || result.User.XP != 0 {
		t.Errorf("new user xp=%d level=%d, want 0/1", result.User.XP, result.User.Level)
	}
	if result.User.Password == "password123" {
		t.Error("password stored in plaintext")
	}

	login, err := svc.Login("alice@test.io", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Error("login returned a different user")
	}

	if _, err := svc.Login("alice@test.io", "wrong-password"); !errors.Is(err, util.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Login("nobody@test.io", "password123"); !errors.Is(err, util.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown email, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, nil)

	if _, err := svc.Register("Alice", "dup@test.io", "password123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register("Bob", "dup@test.io", "password456")
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestResolveBearerToken(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, nil)

	result, err := svc.Register("Alice", "bearer@test.io", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.ResolveBearerToken(result.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.Email != "bearer@test.io" {
		t.Errorf("resolved wrong user: %s", user.Email)
	}

	if _, err := svc.ResolveBearerToken("not-a-jwt"); !errors.Is(err, util.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolveSessionToken(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, nil)
	user := env.mustCreateUser(t, "cookie@test.io")

	session := &model.Session{
		UserID:       user.ID,
		SessionToken: "valid-session-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := env.sessions.Create(session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	resolved, err := svc.ResolveSessionToken("valid-session-token")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != user.ID {
		t.Error("resolved wrong user")
	}

	if _, err := svc.ResolveSessionToken("ghost-token"); !errors.Is(err, util.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolveSessionTokenExpired(t *testing.T) {
	// 行还在库里，但过期即拒绝
	env := newTestEnv(t)
	svc := newAuthService(env, nil)
	user := env.mustCreateUser(t, "expired@test.io")

	session := &model.Session{
		UserID:       user.ID,
		SessionToken: "expired-session-token",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	if err := env.sessions.Create(session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	_, err := svc.ResolveSessionToken("expired-session-token")
	if !errors.Is(err, util.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestExchangeProviderSession(t *testing.T) {
	env := newTestEnv(t)

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-ID") != "one-time-id" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"ext-1","email":"oauth@test.io","name":"OAuth User","picture":"https://img.test/p.png","session_token":"provider-token-1"}`))
	}))
	defer provider.Close()

	svc := newAuthService(env, NewProviderClient(provider.URL))

	user, session, err := svc.ExchangeProviderSession(context.Background(), "one-time-id")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if user.Email != "oauth@test.io" || user.AuthMode != model.AuthModeProvider {
		t.Errorf("unexpected user: %+v", user)
	}
	if session.SessionToken != "provider-token-1" {
		t.Errorf("session token = %s", session.SessionToken)
	}
	if !session.ExpiresAt.After(time.Now().Add(6 * 24 * time.Hour)) {
		t.Error("session expiry should be about 7 days out")
	}

	// 同邮箱再次换取不会新建用户（同一 provider token 会撞唯一索引，用户数不受影响）
	_, _, _ = svc.ExchangeProviderSession(context.Background(), "one-time-id")
	var count int64
	env.db.Model(&model.User{}).Where("email = ?", "oauth@test.io").Count(&count)
	if count != 1 {
		t.Errorf("user rows = %d, want 1", count)
	}

	// 无效 session_id
	if _, _, err := svc.ExchangeProviderSession(context.Background(), "bad-id"); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, nil)
	user := env.mustCreateUser(t, "logout@test.io")

	session := &model.Session{
		UserID:       user.ID,
		SessionToken: "logout-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := env.sessions.Create(session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := svc.Logout("logout-token"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := env.sessions.FindByToken("logout-token"); err == nil {
		t.Error("session row should be deleted")
	}
	// 没有会话也返回成功
	if err := svc.Logout("logout-token"); err != nil {
		t.Fatalf("repeat logout: %v", err)
	}
	if err := svc.Logout(""); err != nil {
		t.Fatalf("empty token logout: %v", err)
	}
}

func TestProviderLoginUserHasNoPassword(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, nil)

	user := &model.User{Name: "OAuth", Email: "noauth@test.io", AuthMode: model.AuthModeProvider}
	if err := env.users.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := svc.Login("noauth@test.io", "anything"); !errors.Is(err, util.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
