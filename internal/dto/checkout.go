package dto

type CheckoutSessionRequestDTO struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
}

type CheckoutSessionResponseDTO struct {
	ID        string `json:"id" example:"cs_test_a1b2c3"`
	URL       string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_a1b2c3"`
	ExpiresAt int64  `json:"expires_at" example:"1740832200"`
}

type ConfirmRequestDTO struct {
	SessionID string `json:"session_id" validate:"required" example:"cs_test_a1b2c3"`
}

// ConfirmResponseDTO reports the poll outcome. Processed is true only when this call applied the payment.
type ConfirmResponseDTO struct {
	OK        bool     `json:"ok"`
	Reason    string   `json:"reason,omitempty" example:"unpaid"`
	Processed bool     `json:"processed"`
	User      *UserDTO `json:"user,omitempty"`
}

type WebhookResponseDTO struct {
	Received bool   `json:"received"`
	Status   string `json:"status,omitempty" example:"applied"`
}
