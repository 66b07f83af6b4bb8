package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

type stubUserService struct {
	err error
}

func (s *stubUserService) Register(ctx context.Context, input usecase.RegisterInput) error {
	return s.err
}

func TestUserHandler_Register(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		serviceErr   error
		expectedCode int
	}{
		{
			name:         "success",
			body:         `{"username":"alice","password":"password-1"}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "malformed json",
			body:         `not json`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing username",
			body:         `{"password":"password-1"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "duplicate user",
			body:         `{"username":"alice","password":"password-1"}`,
			serviceErr:   domain.ErrUserExists,
			expectedCode: http.StatusConflict,
		},
		{
			name:         "weak password",
			body:         `{"username":"alice","password":"short"}`,
			serviceErr:   domain.ErrPasswordTooWeak,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewUserHandler(&stubUserService{err: tt.serviceErr})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected %d, got %d (%s)", tt.expectedCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUserHandler_RegisterResponseBody(t *testing.T) {
	h := handler.NewUserHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", strings.NewReader(`{"username":"alice","password":"password-1"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if result["username"] != "alice" {
		t.Errorf("expected username alice, got %v", result["username"])
	}
}
