package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/internal/dto"
	"github.com/GlebRadaev/thetop36/internal/service/authservice"
	pkgauth "github.com/GlebRadaev/thetop36/pkg/auth"
	"github.com/GlebRadaev/thetop36/pkg/utils"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service, true)
	return handler, service
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)
	alice := &domain.User{ID: 1, Email: "alice@example.com", Tickets: 2, Referrals: 1}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  *dto.LoginResponseDTO
	}{
		{
			name: "Successful login",
			body: `{"email":" Alice@Example.com "}`,
			prepareMock: func() {
				service.EXPECT().Login(gomock.Any(), "alice@example.com").Return(alice, nil)
				service.EXPECT().GenerateToken("alice@example.com").Return("token", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.LoginResponseDTO{
				OK:   true,
				User: dto.UserDTO{Email: "alice@example.com", Tickets: 2, Referrals: 1, TotalScore: 3},
			},
		},
		{
			name:          "Malformed body",
			body:          `{`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Request body is required",
		},
		{
			name:          "Invalid email",
			body:          `{"email":"nope"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid email format",
		},
		{
			name: "Service rejects email",
			body: `{"email":"alice@example.com"}`,
			prepareMock: func() {
				service.EXPECT().Login(gomock.Any(), "alice@example.com").Return(nil, authservice.ErrInvalidEmail)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid email format",
		},
		{
			name: "Store failure",
			body: `{"email":"alice@example.com"}`,
			prepareMock: func() {
				service.EXPECT().Login(gomock.Any(), "alice@example.com").Return(nil, errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name: "Token failure",
			body: `{"email":"alice@example.com"}`,
			prepareMock: func() {
				service.EXPECT().Login(gomock.Any(), "alice@example.com").Return(alice, nil)
				service.EXPECT().GenerateToken("alice@example.com").Return("", errors.New("sign error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
				return
			}
			var resp dto.LoginResponseDTO
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, *tt.expectedBody, resp)
			assert.Equal(t, "Bearer token", w.Header().Get("Authorization"))

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, pkgauth.CookieName, cookies[0].Name)
			assert.Equal(t, "token", cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
			assert.True(t, cookies[0].Secure)
			assert.Equal(t, 30*24*60*60, cookies[0].MaxAge)
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	handler, _ := NewMock(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, pkgauth.CookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestMeHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		email        string
		prepareMock  func()
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Anonymous",
			prepareMock:  func() {},
			expectedCode: http.StatusOK,
			expectedBody: `{"authed":false}`,
		},
		{
			name:  "Signed in",
			email: "alice@example.com",
			prepareMock: func() {
				service.EXPECT().Me(gomock.Any(), "alice@example.com").
					Return(&domain.User{Email: "alice@example.com", Tickets: 1, Referrals: 2}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"authed":true,"user":{"email":"alice@example.com","tickets":1,"referrals":2,"totalScore":3}}`,
		},
		{
			name:  "Token for unknown user",
			email: "ghost@example.com",
			prepareMock: func() {
				service.EXPECT().Me(gomock.Any(), "ghost@example.com").Return(nil, authservice.ErrUserNotFound)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"authed":false}`,
		},
		{
			name:  "Store failure",
			email: "alice@example.com",
			prepareMock: func() {
				service.EXPECT().Me(gomock.Any(), "alice@example.com").Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.email != "" {
				req = req.WithContext(context.WithValue(req.Context(), pkgauth.EmailKey, tt.email))
			}
			w := httptest.NewRecorder()

			handler.Me(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
