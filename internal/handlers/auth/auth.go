package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/internal/dto"
	"github.com/GlebRadaev/thetop36/internal/service/authservice"
	pkgauth "github.com/GlebRadaev/thetop36/pkg/auth"
	"github.com/GlebRadaev/thetop36/pkg/utils"
	"github.com/GlebRadaev/thetop36/pkg/validate"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=auth

type Service interface {
	Login(ctx context.Context, email string) (*domain.User, error)
	GenerateToken(email string) (string, error)
	Me(ctx context.Context, email string) (*domain.User, error)
}

type AuthHandler struct {
	authService   Service
	secureCookies bool
}

func New(authService Service, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// Login godoc
//
//	@Summary		Log in by email
//	@Description	Create the user on first login and issue a 30-day session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.LoginResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid email format"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Request body is required")
		return
	}
	req.Email = domain.NormalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidEmail) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid email format")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	token, err := h.authService.GenerateToken(user.Email)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     pkgauth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(pkgauth.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.LoginResponseDTO{
		OK:   true,
		User: *dto.NewUserDTO(user),
	})
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Clear the session cookie
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	utils.Response
//	@Router			/api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     pkgauth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Logged out"})
}

// Me godoc
//
//	@Summary		Current user
//	@Description	Return the signed-in user with ticket and referral counts, or authed=false
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	dto.MeResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := pkgauth.EmailFromContext(r.Context())
	if !ok {
		utils.RespondWithJSON(w, http.StatusOK, dto.MeResponseDTO{Authed: false})
		return
	}
	user, err := h.authService.Me(r.Context(), email)
	if err != nil {
		if errors.Is(err, authservice.ErrUserNotFound) {
			utils.RespondWithJSON(w, http.StatusOK, dto.MeResponseDTO{Authed: false})
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MeResponseDTO{
		Authed: true,
		User:   dto.NewUserDTO(user),
	})
}
