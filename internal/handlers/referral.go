package handlers

import (
	"net/http"
	"strings"

	checkouthandlers "github.com/GlebRadaev/thetop36/internal/handlers/checkout"
)

const (
	referralMaxAge   = 45 * 24 * 60 * 60
	maxReferralChars = 254
	webhookPath      = "/api/stripe/webhook"
)

// ReferralMiddleware remembers a ?ref= value in a cookie so a later checkout can credit the referrer.
func ReferralMiddleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != webhookPath {
				ref := strings.TrimSpace(r.URL.Query().Get("ref"))
				if ref != "" && len(ref) <= maxReferralChars {
					http.SetCookie(w, &http.Cookie{
						Name:     checkouthandlers.ReferralCookie,
						Value:    ref,
						Path:     "/",
						MaxAge:   referralMaxAge,
						HttpOnly: true,
						Secure:   secure,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
