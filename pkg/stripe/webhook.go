package stripe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	stripego "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

const (
	SignatureHeader  = "Stripe-Signature"
	DefaultTolerance = webhook.DefaultTolerance

	EventCheckoutSessionCompleted      = "checkout.session.completed"
	EventCheckoutAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	EventPaymentIntentSucceeded        = "payment_intent.succeeded"
)

var (
	ErrInvalidSignature = errors.New("invalid stripe signature")
	ErrInvalidPayload   = errors.New("invalid stripe payload")
)

type (
	Event     = stripego.Event
	EventData = stripego.EventData
)

// ConstructEvent verifies the Stripe-Signature header and decodes the event.
// Events from any API version are accepted; only the session object is read.
func ConstructEvent(payload []byte, header, secret string, tolerance time.Duration) (*Event, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrInvalidSignature
	}
	event, err := webhook.ConstructEventWithOptions(payload, header, secret, webhook.ConstructEventOptions{
		Tolerance:                tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if strings.TrimSpace(event.ID) == "" || event.Type == "" {
		return nil, ErrInvalidPayload
	}
	return &event, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

// SessionFromEvent decodes the event object as a checkout session.
func SessionFromEvent(event *Event) (*CheckoutSession, error) {
	if event == nil || event.Data == nil || len(event.Data.Raw) == 0 {
		return nil, ErrInvalidPayload
	}
	var session CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if strings.TrimSpace(session.ID) == "" {
		return nil, ErrInvalidPayload
	}
	return &session, nil
}
