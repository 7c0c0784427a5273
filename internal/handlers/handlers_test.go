package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/thetop36/internal/config"
	"github.com/GlebRadaev/thetop36/internal/handlers/auth"
	"github.com/GlebRadaev/thetop36/internal/handlers/checkout"
	"github.com/GlebRadaev/thetop36/internal/handlers/draw"
	"github.com/GlebRadaev/thetop36/internal/handlers/leaderboard"
	"github.com/GlebRadaev/thetop36/internal/handlers/webhook"
	"github.com/GlebRadaev/thetop36/internal/realtime"
	"github.com/GlebRadaev/thetop36/internal/service"
	pkgauth "github.com/GlebRadaev/thetop36/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:        auth.NewMockService(ctrl),
		CheckoutService:    checkout.NewMockService(ctrl),
		ConfirmService:     checkout.NewMockReconciler(ctrl),
		PaymentService:     webhook.NewMockService(ctrl),
		DrawService:        draw.NewMockService(ctrl),
		LeaderboardService: leaderboard.NewMockService(ctrl),
		JWTService:         pkgauth.NewMockJWTServiceInterface(ctrl),
		Hub:                realtime.NewHub(time.Minute, time.Minute),
	}

	h := New(services, &config.Config{SecureCookies: true, KeepAliveInterval: time.Second})
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.True(t, h.SecureCookies)
}

func newRouter(t *testing.T) (chi.Router, *pkgauth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockCheckoutHandler := NewMockCheckoutHandler(ctrl)
	mockWebhookHandler := NewMockWebhookHandler(ctrl)
	mockDrawHandler := NewMockDrawHandler(ctrl)
	mockLeaderboardHandler := NewMockLeaderboardHandler(ctrl)
	mockRealtimeHandler := NewMockRealtimeHandler(ctrl)
	mockJWTService := pkgauth.NewMockJWTServiceInterface(ctrl)

	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Logout(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Me(gomock.Any(), gomock.Any()).AnyTimes()
	mockCheckoutHandler.EXPECT().CreateSession(gomock.Any(), gomock.Any()).AnyTimes()
	mockCheckoutHandler.EXPECT().Confirm(gomock.Any(), gomock.Any()).AnyTimes()
	mockWebhookHandler.EXPECT().Stripe(gomock.Any(), gomock.Any()).AnyTimes()
	mockDrawHandler.EXPECT().Run(gomock.Any(), gomock.Any()).AnyTimes()
	mockLeaderboardHandler.EXPECT().Leaderboard(gomock.Any(), gomock.Any()).AnyTimes()
	mockLeaderboardHandler.EXPECT().Winners(gomock.Any(), gomock.Any()).AnyTimes()
	mockRealtimeHandler.EXPECT().Stream(gomock.Any(), gomock.Any()).AnyTimes()
	mockRealtimeHandler.EXPECT().Stats(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:        mockAuthHandler,
		CheckoutHandler:    mockCheckoutHandler,
		WebhookHandler:     mockWebhookHandler,
		DrawHandler:        mockDrawHandler,
		LeaderboardHandler: mockLeaderboardHandler,
		RealtimeHandler:    mockRealtimeHandler,
		JWTService:         mockJWTService,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)
	return router, mockJWTService
}

func TestInitRoutes(t *testing.T) {
	router, _ := newRouter(t)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/auth/login", http.StatusOK},
		{"POST", "/api/auth/logout", http.StatusOK},
		{"GET", "/api/me", http.StatusOK},
		{"POST", "/api/checkout/session", http.StatusOK},
		{"POST", "/api/checkout/confirm", http.StatusOK},
		{"POST", "/api/stripe/webhook", http.StatusOK},
		{"POST", "/api/draw/run", http.StatusOK},
		{"GET", "/api/draw/run", http.StatusOK},
		{"GET", "/api/leaderboard", http.StatusOK},
		{"GET", "/api/winners", http.StatusOK},
		{"GET", "/api/realtime/stream", http.StatusOK},
		{"GET", "/api/realtime/stats", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"GET", "/api/unknown", http.StatusNotFound},
		{"DELETE", "/api/leaderboard", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestMeReadsSessionCookie(t *testing.T) {
	router, jwtService := newRouter(t)
	jwtService.EXPECT().ValidateToken("token").Return(&pkgauth.Claims{Email: "alice@example.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: pkgauth.CookieName, Value: "token"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReferralMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := ReferralMiddleware(true)(next)

	tests := []struct {
		name       string
		url        string
		wantCookie bool
		wantValue  string
	}{
		{name: "Stores referral", url: "/?ref=alice@example.com", wantCookie: true, wantValue: "alice@example.com"},
		{name: "Trims referral", url: "/api/leaderboard?ref=%20bob%20", wantCookie: true, wantValue: "bob"},
		{name: "No referral", url: "/api/leaderboard"},
		{name: "Blank referral", url: "/?ref=%20"},
		{name: "Skipped on webhook", url: "/api/stripe/webhook?ref=alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusNoContent, rec.Code)
			cookies := rec.Result().Cookies()
			if !tt.wantCookie {
				assert.Empty(t, cookies)
				return
			}
			require.Len(t, cookies, 1)
			assert.Equal(t, "ref", cookies[0].Name)
			assert.Equal(t, tt.wantValue, cookies[0].Value)
			assert.Equal(t, 45*24*60*60, cookies[0].MaxAge)
			assert.True(t, cookies[0].HttpOnly)
			assert.True(t, cookies[0].Secure)
		})
	}
}
