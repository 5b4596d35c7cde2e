package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestLoginIssuesValidToken(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewService("soraia", "s3cret", "signing-key", time.Hour).WithClock(func() time.Time { return now })

	token, expiresAt, err := svc.Login("soraia", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expiresAt = %v", expiresAt)
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte("signing-key"), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil || !parsed.Valid {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "soraia" {
		t.Errorf("subject = %q", claims.Subject)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService("soraia", "s3cret", "signing-key", time.Hour)

	for _, tc := range []struct{ user, pass string }{
		{"soraia", "wrong"},
		{"other", "s3cret"},
		{"", ""},
	} {
		if _, _, err := svc.Login(tc.user, tc.pass); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q) err = %v, want ErrInvalidCredentials", tc.user, tc.pass, err)
		}
	}
}

func TestLoginUnconfigured(t *testing.T) {
	svc := NewService("", "", "", time.Hour)
	if _, _, err := svc.Login("a", "b"); err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}

func TestLoginEndpoint(t *testing.T) {
	h := NewHandler(NewService("soraia", "s3cret", "signing-key", time.Hour), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"soraia","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
}

func TestLoginEndpointUnauthorized(t *testing.T) {
	h := NewHandler(NewService("soraia", "s3cret", "signing-key", time.Hour), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"soraia","password":"nope"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
