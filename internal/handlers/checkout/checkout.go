package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/internal/dto"
	"github.com/GlebRadaev/thetop36/internal/service/checkoutservice"
	"github.com/GlebRadaev/thetop36/internal/service/paymentservice"
	"github.com/GlebRadaev/thetop36/pkg/utils"
	"github.com/GlebRadaev/thetop36/pkg/validate"
)

//go:generate mockgen -source=checkout.go -destination=mock_checkout.go -package=checkout

// ReferralCookie holds the referrer captured from a ?ref= link.
const ReferralCookie = "ref"

type Service interface {
	CreateSession(ctx context.Context, email, referral string) (*checkoutservice.Session, error)
}

type Reconciler interface {
	ConfirmSession(ctx context.Context, sessionID string) (*paymentservice.Result, error)
}

type CheckoutHandler struct {
	checkoutService Service
	reconciler      Reconciler
}

func New(checkoutService Service, reconciler Reconciler) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		reconciler:      reconciler,
	}
}

// CreateSession godoc
//
//	@Summary		Start checkout
//	@Description	Create a hosted checkout session for one bundle; the ref cookie becomes the referral
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CheckoutSessionRequestDTO	true	"Checkout request body"
//	@Success		200		{object}	dto.CheckoutSessionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid email format"
//	@Failure		500		{object}	utils.Response	"Payment service temporarily unavailable"
//	@Router			/api/checkout/session [post]
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Request body is required")
		return
	}
	req.Email = domain.NormalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	referral := ""
	if cookie, err := r.Cookie(ReferralCookie); err == nil {
		referral = cookie.Value
	}

	session, err := h.checkoutService.CreateSession(r.Context(), req.Email, referral)
	if err != nil {
		switch {
		case errors.Is(err, checkoutservice.ErrInvalidEmail):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid email format")
		case errors.Is(err, checkoutservice.ErrNotConfigured):
			utils.RespondWithError(w, http.StatusInternalServerError, "Stripe not configured")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Payment service temporarily unavailable")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.CheckoutSessionResponseDTO{
		ID:        session.ID,
		URL:       session.URL,
		ExpiresAt: session.ExpiresAt,
	})
}

// Confirm godoc
//
//	@Summary		Confirm payment
//	@Description	Poll the provider for a checkout session and credit the ticket if the webhook has not yet
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ConfirmRequestDTO	true	"Confirm request body"
//	@Success		200		{object}	dto.ConfirmResponseDTO
//	@Failure		400		{object}	utils.Response	"Bad request"
//	@Failure		404		{object}	utils.Response	"Checkout session not found"
//	@Failure		503		{object}	utils.Response	"Temporarily unavailable"
//	@Router			/api/checkout/confirm [post]
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Bad request")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Bad request")
		return
	}

	result, err := h.reconciler.ConfirmSession(r.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrInvalidSession):
			utils.RespondWithError(w, http.StatusBadRequest, "Bad request")
		case errors.Is(err, paymentservice.ErrSessionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Checkout session not found")
		case errors.Is(err, paymentservice.ErrUnprocessableEvent):
			utils.RespondWithJSON(w, http.StatusOK, dto.ConfirmResponseDTO{OK: false, Reason: "no-email"})
		default:
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Temporarily unavailable")
		}
		return
	}

	switch result.Status {
	case paymentservice.StatusNotPaid:
		utils.RespondWithJSON(w, http.StatusOK, dto.ConfirmResponseDTO{OK: false, Reason: "unpaid"})
	default:
		utils.RespondWithJSON(w, http.StatusOK, dto.ConfirmResponseDTO{
			OK:        true,
			Processed: result.Status == paymentservice.StatusApplied,
			User:      dto.NewUserDTO(result.User),
		})
	}
}
