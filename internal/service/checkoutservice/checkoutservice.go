package checkoutservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/pkg/stripe"
	"github.com/GlebRadaev/thetop36/pkg/validate"
)

//go:generate mockgen -source=checkoutservice.go -destination=mock_checkoutservice.go -package=checkoutservice

const (
	Purpose     = "thetop36_bundle"
	ProductName = "TheTop36 Bundle"
	UnitAmount  = 700
	Currency    = "usd"
	SessionTTL  = 30 * time.Minute
)

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrNoCheckoutURL   = errors.New("checkout session has no url")
	ErrNotConfigured   = errors.New("payments are not configured")
	ErrProviderFailure = errors.New("payment service temporarily unavailable")
)

type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, params stripe.CheckoutParams) (*stripe.CheckoutSession, error)
}

type Session struct {
	ID        string
	URL       string
	ExpiresAt int64
}

type Service struct {
	creator SessionCreator
	siteURL string
	priceID string
	now     func() time.Time
	newKey  func() string
}

func New(creator SessionCreator, siteURL, priceID string) *Service {
	return &Service{
		creator: creator,
		siteURL: siteURL,
		priceID: priceID,
		now:     time.Now,
		newKey:  uuid.NewString,
	}
}

// CreateSession opens a hosted checkout for one bundle. referral comes from the visitor's ref cookie.
func (s *Service) CreateSession(ctx context.Context, email, referral string) (*Session, error) {
	email = domain.NormalizeEmail(email)
	if !validate.IsEmail(email) {
		return nil, ErrInvalidEmail
	}

	metadata := map[string]string{
		stripe.MetadataPurpose: Purpose,
		stripe.MetadataEmail:   email,
	}
	referral = domain.NormalizeEmail(referral)
	switch {
	case validate.IsEmail(referral):
		metadata[stripe.MetadataReferral] = referral
	case referral != "":
		zap.L().Debug("dropping malformed referral", zap.String("referral", referral))
		referral = ""
	}

	params := stripe.CheckoutParams{
		Email:          email,
		PriceID:        s.priceID,
		UnitAmount:     UnitAmount,
		Currency:       Currency,
		ProductName:    ProductName,
		SuccessURL:     s.siteURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      s.siteURL + "/buy?canceled=1",
		ExpiresAt:      s.now().Add(SessionTTL),
		Metadata:       metadata,
		IdempotencyKey: "checkout:" + s.newKey(),
	}

	session, err := s.creator.CreateCheckoutSession(ctx, params)
	if err != nil {
		if errors.Is(err, stripe.ErrNotConfigured) {
			zap.L().Error("stripe is not configured")
			return nil, ErrNotConfigured
		}
		zap.L().Error("can't create checkout session", zap.String("email", email), zap.Error(err))
		return nil, ErrProviderFailure
	}
	if session.URL == "" {
		zap.L().Error("checkout session without url", zap.String("session_id", session.ID))
		return nil, ErrNoCheckoutURL
	}

	zap.L().Info("checkout session created",
		zap.String("session_id", session.ID), zap.String("email", email), zap.String("referral", referral))
	return &Session{ID: session.ID, URL: session.URL, ExpiresAt: session.ExpiresAt}, nil
}
