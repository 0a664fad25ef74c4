package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agencydesk/agencydesk-backend/internal/auth"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
	"github.com/agencydesk/agencydesk-backend/pkg/logger"
)

type stubAuthService struct {
	login   *auth.LoginResponse
	refresh *auth.RefreshResponse
	err     error

	loggedOut []string
}

func (s *stubAuthService) Login(_ context.Context, _ auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.loggedOut = append(s.loggedOut, accessID)
	return s.err
}

func (s *stubAuthService) Refresh(_ context.Context, _ auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return s.refresh, s.err
}

func controllerTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test"})
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{login: &auth.LoginResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}}
	handler := AuthLogin(svc, controllerTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"admin","password":"secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" {
		t.Fatalf("expected access token in payload got %+v", envelope.Data)
	}
}

func TestAuthLoginMissingFields(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, controllerTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"admin"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, controllerTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"admin","password":"wrong"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthLogoutWithoutToken(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogout(svc, testJWTConfig(), controllerTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "" {
		t.Fatalf("expected logout with empty session id, got %v", svc.loggedOut)
	}
}
