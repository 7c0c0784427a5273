package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/thetop36/docs"
	"github.com/GlebRadaev/thetop36/internal/config"
	authhandlers "github.com/GlebRadaev/thetop36/internal/handlers/auth"
	checkouthandlers "github.com/GlebRadaev/thetop36/internal/handlers/checkout"
	drawhandlers "github.com/GlebRadaev/thetop36/internal/handlers/draw"
	leaderboardhandlers "github.com/GlebRadaev/thetop36/internal/handlers/leaderboard"
	realtimehandlers "github.com/GlebRadaev/thetop36/internal/handlers/realtime"
	webhookhandlers "github.com/GlebRadaev/thetop36/internal/handlers/webhook"
	"github.com/GlebRadaev/thetop36/internal/service"
	"github.com/GlebRadaev/thetop36/pkg/auth"
	"github.com/GlebRadaev/thetop36/pkg/metrics"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type CheckoutHandler interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Stripe(w http.ResponseWriter, r *http.Request)
}

type DrawHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
}

type LeaderboardHandler interface {
	Leaderboard(w http.ResponseWriter, r *http.Request)
	Winners(w http.ResponseWriter, r *http.Request)
}

type RealtimeHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	CheckoutHandler    CheckoutHandler
	WebhookHandler     WebhookHandler
	DrawHandler        DrawHandler
	LeaderboardHandler LeaderboardHandler
	RealtimeHandler    RealtimeHandler

	JWTService    auth.JWTServiceInterface
	SecureCookies bool
}

func New(s *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService, cfg.SecureCookies),
		CheckoutHandler:    checkouthandlers.New(s.CheckoutService, s.ConfirmService),
		WebhookHandler:     webhookhandlers.New(s.PaymentService),
		DrawHandler:        drawhandlers.New(s.DrawService, cfg.CronSecret),
		LeaderboardHandler: leaderboardhandlers.New(s.LeaderboardService),
		RealtimeHandler:    realtimehandlers.New(s.Hub, cfg.KeepAliveInterval),
		JWTService:         s.JWTService,
		SecureCookies:      cfg.SecureCookies,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		ReferralMiddleware(h.SecureCookies),
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", metrics.NewHandler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.AuthHandler.Login)
			r.Post("/logout", h.AuthHandler.Logout)
		})
		r.With(auth.OptionalMiddleware(h.JWTService)).Get("/me", h.AuthHandler.Me)

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/session", h.CheckoutHandler.CreateSession)
			r.Post("/confirm", h.CheckoutHandler.Confirm)
		})
		r.Post("/stripe/webhook", h.WebhookHandler.Stripe)

		r.Route("/draw", func(r chi.Router) {
			r.Get("/run", h.DrawHandler.Run)
			r.Post("/run", h.DrawHandler.Run)
		})

		r.Get("/leaderboard", h.LeaderboardHandler.Leaderboard)
		r.Get("/winners", h.LeaderboardHandler.Winners)

		r.Route("/realtime", func(r chi.Router) {
			r.Get("/stream", h.RealtimeHandler.Stream)
			r.Get("/stats", h.RealtimeHandler.Stats)
		})
	})

	return r
}
