package service

import (
	"github.com/GlebRadaev/thetop36/internal/config"
	"github.com/GlebRadaev/thetop36/internal/handlers/auth"
	"github.com/GlebRadaev/thetop36/internal/handlers/checkout"
	"github.com/GlebRadaev/thetop36/internal/handlers/draw"
	"github.com/GlebRadaev/thetop36/internal/handlers/leaderboard"
	"github.com/GlebRadaev/thetop36/internal/handlers/webhook"
	"github.com/GlebRadaev/thetop36/internal/realtime"
	"github.com/GlebRadaev/thetop36/internal/repo"
	authservice "github.com/GlebRadaev/thetop36/internal/service/authservice"
	checkoutservice "github.com/GlebRadaev/thetop36/internal/service/checkoutservice"
	drawservice "github.com/GlebRadaev/thetop36/internal/service/drawservice"
	leaderboardservice "github.com/GlebRadaev/thetop36/internal/service/leaderboardservice"
	paymentservice "github.com/GlebRadaev/thetop36/internal/service/paymentservice"
	pkgauth "github.com/GlebRadaev/thetop36/pkg/auth"
	"github.com/GlebRadaev/thetop36/pkg/stripe"
)

type Services struct {
	AuthService        auth.Service
	CheckoutService    checkout.Service
	ConfirmService     checkout.Reconciler
	PaymentService     webhook.Service
	DrawService        draw.Service
	LeaderboardService leaderboard.Service

	JWTService pkgauth.JWTServiceInterface
	Hub        *realtime.Hub
}

func New(cfg *config.Config, repo *repo.Repositories, stripeClient *stripe.Client, hub *realtime.Hub) *Services {
	jwtService := pkgauth.NewJWTService(cfg.JWTSecret)
	location := cfg.Location()

	paymentService := paymentservice.New(paymentservice.Config{
		WebhookSecret: cfg.StripeWebhookSecret,
		Tolerance:     stripe.DefaultTolerance,
		RecentLimit:   cfg.RecentSessionsCap,
	}, repo.PaymentRepo, repo.UserRepo, stripeClient, hub)

	return &Services{
		AuthService:        authservice.New(repo.UserRepo, jwtService),
		CheckoutService:    checkoutservice.New(stripeClient, cfg.SiteURL, cfg.StripePriceID),
		ConfirmService:     paymentService,
		PaymentService:     paymentService,
		DrawService:        drawservice.New(repo.UserRepo, repo.WinnerRepo, repo.DrawCache, hub, cfg.DrawPrize, location),
		LeaderboardService: leaderboardservice.New(repo.UserRepo, repo.WinnerRepo, location),
		JWTService:         jwtService,
		Hub:                hub,
	}
}
