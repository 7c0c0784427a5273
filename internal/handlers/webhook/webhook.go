package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/dto"
	"github.com/GlebRadaev/thetop36/internal/service/paymentservice"
	"github.com/GlebRadaev/thetop36/pkg/stripe"
	"github.com/GlebRadaev/thetop36/pkg/utils"
)

//go:generate mockgen -source=webhook.go -destination=mock_webhook.go -package=webhook

const maxPayloadBytes = 1 << 20

type Service interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*paymentservice.Result, error)
}

type WebhookHandler struct {
	paymentService Service
}

func New(paymentService Service) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService}
}

// Stripe godoc
//
//	@Summary		Stripe webhook
//	@Description	Receive signed payment events and credit tickets exactly once per checkout session
//	@Tags			Webhook
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string	true	"Stripe signature header"
//	@Success		200					{object}	dto.WebhookResponseDTO
//	@Failure		400					{object}	utils.Response	"Invalid signature"
//	@Failure		500					{object}	utils.Response	"Webhook handler failed"
//	@Router			/api/stripe/webhook [post]
func (h *WebhookHandler) Stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	signature := r.Header.Get(stripe.SignatureHeader)
	if signature == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing signature")
		return
	}

	result, err := h.paymentService.HandleWebhook(r.Context(), payload, signature)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrInvalidSignature):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid signature")
		case errors.Is(err, paymentservice.ErrInvalidEvent):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		case errors.Is(err, paymentservice.ErrUnprocessableEvent):
			utils.RespondWithJSON(w, http.StatusOK, dto.WebhookResponseDTO{Received: true, Status: "unprocessable"})
		default:
			zap.L().Error("webhook handler failed", zap.Error(err))
			utils.RespondWithError(w, http.StatusInternalServerError, "Webhook handler failed")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.WebhookResponseDTO{Received: true, Status: string(result.Status)})
}
