package stripe

import (
	"strings"

	stripego "github.com/stripe/stripe-go/v81"
)

type (
	CheckoutSession = stripego.CheckoutSession
	CustomerDetails = stripego.CheckoutSessionCustomerDetails
)

const (
	PaymentStatusPaid   = stripego.CheckoutSessionPaymentStatusPaid
	PaymentStatusUnpaid = stripego.CheckoutSessionPaymentStatusUnpaid

	MetadataProcessed = "processed"
	MetadataReferral  = "ref"
	MetadataEmail     = "email"
	MetadataPurpose   = "purpose"
)

func Paid(s *CheckoutSession) bool {
	return s != nil && s.PaymentStatus == PaymentStatusPaid
}

// PayerEmail prefers the email collected at creation over the one typed at checkout.
func PayerEmail(s *CheckoutSession) string {
	if s == nil {
		return ""
	}
	if email := strings.TrimSpace(s.CustomerEmail); email != "" {
		return email
	}
	if s.CustomerDetails != nil {
		return strings.TrimSpace(s.CustomerDetails.Email)
	}
	return ""
}

func MetadataValue(s *CheckoutSession, key string) string {
	if s == nil || s.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(s.Metadata[key])
}

// MarkedProcessed reports whether the session already carries the out-of-band processed marker.
func MarkedProcessed(s *CheckoutSession) bool {
	return MetadataValue(s, MetadataProcessed) == "true"
}
