package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/internal/realtime"
	"github.com/GlebRadaev/thetop36/pkg/metrics"
	"github.com/GlebRadaev/thetop36/pkg/stripe"
)

//go:generate mockgen -source=paymentservice.go -destination=mock_paymentservice.go -package=paymentservice

type PaymentRepo interface {
	ApplyPayment(ctx context.Context, payment *domain.ProcessedPayment) (*domain.PaymentApplication, error)
}

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type SessionProvider interface {
	RetrieveSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}

type Publisher interface {
	Publish(eventType string, payload any) int
}

type Status string

const (
	StatusApplied   Status = "applied"
	StatusDuplicate Status = "duplicate"
	StatusNotPaid   Status = "not_paid"
	StatusIgnored   Status = "ignored"
)

var (
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrInvalidEvent       = errors.New("invalid payment event")
	ErrUnprocessableEvent = errors.New("payment has no payer email")
	ErrInvalidSession     = errors.New("session id is required")
	ErrSessionNotFound    = errors.New("checkout session not found")
)

type Result struct {
	Status    Status
	SessionID string
	User      *domain.User
	Referrer  *domain.User
}

type LeaderboardUpdate struct {
	Email      string `json:"email"`
	Tickets    int    `json:"tickets"`
	Referrals  int    `json:"referrals"`
	ReferralID string `json:"referralId,omitempty"`
}

type Config struct {
	WebhookSecret string
	Tolerance     time.Duration
	RecentLimit   int
}

type Service struct {
	payments  PaymentRepo
	users     UserRepo
	sessions  SessionProvider
	publisher Publisher

	webhookSecret string
	tolerance     time.Duration
	recent        *recentSet
}

func New(cfg Config, payments PaymentRepo, users UserRepo, sessions SessionProvider, publisher Publisher) *Service {
	return &Service{
		payments:      payments,
		users:         users,
		sessions:      sessions,
		publisher:     publisher,
		webhookSecret: cfg.WebhookSecret,
		tolerance:     cfg.Tolerance,
		recent:        newRecentSet(cfg.RecentLimit),
	}
}

// HandleWebhook verifies a pushed provider event and reconciles the checkout session it carries.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*Result, error) {
	event, err := stripe.ConstructEvent(payload, signature, s.webhookSecret, s.tolerance)
	if err != nil {
		if errors.Is(err, stripe.ErrInvalidSignature) {
			zap.L().Warn("rejected webhook with invalid signature", zap.Error(err))
			return nil, ErrInvalidSignature
		}
		zap.L().Warn("rejected malformed webhook", zap.Error(err))
		return nil, ErrInvalidEvent
	}

	switch string(event.Type) {
	case stripe.EventCheckoutSessionCompleted, stripe.EventCheckoutAsyncPaymentSucceeded:
		session, err := stripe.SessionFromEvent(event)
		if err != nil {
			zap.L().Warn("webhook carries no checkout session", zap.String("event_id", event.ID), zap.Error(err))
			return nil, ErrInvalidEvent
		}
		return s.reconcile(ctx, session, domain.PaymentSourceWebhook, event.ID)
	case stripe.EventPaymentIntentSucceeded:
		zap.L().Info("payment intent succeeded", zap.String("event_id", event.ID))
	default:
		zap.L().Info("unhandled stripe event", zap.String("event_id", event.ID), zap.String("type", string(event.Type)))
	}
	return &Result{Status: StatusIgnored}, nil
}

// ConfirmSession is the poll path: it pulls the session from the provider and reconciles it.
func (s *Service) ConfirmSession(ctx context.Context, sessionID string) (*Result, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.RetrieveSession(ctx, sessionID)
	if err != nil {
		if stripe.StatusCode(err) == http.StatusNotFound {
			return nil, ErrSessionNotFound
		}
		zap.L().Error("can't retrieve checkout session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}
	return s.reconcile(ctx, session, domain.PaymentSourceConfirm, "")
}

func (s *Service) reconcile(ctx context.Context, session *stripe.CheckoutSession, source, eventID string) (*Result, error) {
	if !stripe.Paid(session) {
		zap.L().Info("checkout session is not paid yet",
			zap.String("session_id", session.ID), zap.String("payment_status", string(session.PaymentStatus)))
		metrics.PaymentsProcessed.WithLabelValues(source, string(StatusNotPaid)).Inc()
		return &Result{Status: StatusNotPaid, SessionID: session.ID}, nil
	}

	email := domain.NormalizeEmail(stripe.PayerEmail(session))
	if email == "" {
		zap.L().Error("paid checkout session without payer email", zap.String("session_id", session.ID), zap.String("source", source))
		metrics.PaymentsProcessed.WithLabelValues(source, "no_email").Inc()
		return nil, ErrUnprocessableEvent
	}
	referral := domain.NormalizeEmail(stripe.MetadataValue(session, stripe.MetadataReferral))

	if s.recent.Contains(session.ID) || stripe.MarkedProcessed(session) {
		return s.duplicate(ctx, session.ID, source, email)
	}

	application, err := s.payments.ApplyPayment(ctx, &domain.ProcessedPayment{
		SessionID: session.ID,
		EventID:   eventID,
		Source:    source,
		Email:     email,
		Referral:  referral,
	})
	if err != nil {
		zap.L().Error("can't apply payment", zap.String("session_id", session.ID), zap.Error(err))
		metrics.PaymentsProcessed.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("apply payment: %w", err)
	}
	s.recent.Add(session.ID)

	if !application.Applied {
		zap.L().Info("payment already processed", zap.String("session_id", session.ID), zap.String("source", source))
		metrics.PaymentsProcessed.WithLabelValues(source, string(StatusDuplicate)).Inc()
		return &Result{Status: StatusDuplicate, SessionID: session.ID, User: application.Payer}, nil
	}

	zap.L().Info("payment applied",
		zap.String("session_id", session.ID),
		zap.String("source", source),
		zap.String("email", email),
		zap.String("referral", referral),
		zap.Int("tickets", application.Payer.Tickets),
	)
	metrics.PaymentsProcessed.WithLabelValues(source, string(StatusApplied)).Inc()
	s.publisher.Publish(realtime.EventLeaderboardUpdate, LeaderboardUpdate{
		Email:      application.Payer.Email,
		Tickets:    application.Payer.Tickets,
		Referrals:  application.Payer.Referrals,
		ReferralID: referral,
	})

	return &Result{
		Status:    StatusApplied,
		SessionID: session.ID,
		User:      application.Payer,
		Referrer:  application.Referrer,
	}, nil
}

func (s *Service) duplicate(ctx context.Context, sessionID, source, email string) (*Result, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load payer: %w", err)
	}
	zap.L().Info("payment already processed", zap.String("session_id", sessionID), zap.String("source", source))
	metrics.PaymentsProcessed.WithLabelValues(source, string(StatusDuplicate)).Inc()
	return &Result{Status: StatusDuplicate, SessionID: sessionID, User: user}, nil
}
