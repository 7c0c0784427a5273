package stripe

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	stripego "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/pkg/clients"
)

const DefaultBaseURL = stripego.APIURL

var ErrNotConfigured = errors.New("stripe api key is not configured")

type CheckoutParams struct {
	Email          string
	PriceID        string
	UnitAmount     int64
	Currency       string
	ProductName    string
	SuccessURL     string
	CancelURL      string
	ExpiresAt      time.Time
	Metadata       map[string]string
	IdempotencyKey string
}

// Client narrows the Stripe SDK to the checkout session calls the service makes.
type Client struct {
	sessions   *session.Client
	configured bool
}

func NewClient(baseURL, apiKey string, httpClient clients.HTTPClientI) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiKey = strings.TrimSpace(apiKey)
	backend := stripego.GetBackendWithConfig(stripego.APIBackend, &stripego.BackendConfig{
		HTTPClient:        &http.Client{Transport: clients.Transport{Client: httpClient}},
		LeveledLogger:     zap.S(),
		MaxNetworkRetries: stripego.Int64(0),
		URL:               stripego.String(strings.TrimRight(baseURL, "/")),
	})
	return &Client{
		sessions:   &session.Client{B: backend, Key: apiKey},
		configured: apiKey != "",
	}
}

func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx
	return c.sessions.Get(sessionID, params)
}

func (c *Client) UpdateSessionMetadata(ctx context.Context, sessionID string, metadata map[string]string) error {
	if !c.configured {
		return ErrNotConfigured
	}
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}
	_, err := c.sessions.Update(sessionID, params)
	return err
}

func (c *Client) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}
	item := &stripego.CheckoutSessionLineItemParams{Quantity: stripego.Int64(1)}
	if p.PriceID != "" {
		item.Price = stripego.String(p.PriceID)
	} else {
		item.PriceData = &stripego.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripego.String(strings.ToLower(p.Currency)),
			UnitAmount: stripego.Int64(p.UnitAmount),
			ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripego.String(p.ProductName),
			},
		}
	}

	params := &stripego.CheckoutSessionParams{
		Mode:          stripego.String(string(stripego.CheckoutSessionModePayment)),
		CustomerEmail: stripego.String(p.Email),
		SuccessURL:    stripego.String(p.SuccessURL),
		CancelURL:     stripego.String(p.CancelURL),
		LineItems:     []*stripego.CheckoutSessionLineItemParams{item},
	}
	params.Context = ctx
	if !p.ExpiresAt.IsZero() {
		params.ExpiresAt = stripego.Int64(p.ExpiresAt.Unix())
	}
	if len(p.Metadata) > 0 {
		params.PaymentIntentData = &stripego.CheckoutSessionPaymentIntentDataParams{Metadata: map[string]string{}}
		for key, value := range p.Metadata {
			params.AddMetadata(key, value)
			params.PaymentIntentData.Metadata[key] = value
		}
	}
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}

	return c.sessions.New(params)
}

// StatusCode returns the HTTP status of a Stripe API error, or 0 for any other error.
func StatusCode(err error) int {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode
	}
	return 0
}
