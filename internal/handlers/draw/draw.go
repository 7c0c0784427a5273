package draw

import (
	"context"
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/dto"
	"github.com/GlebRadaev/thetop36/internal/service/drawservice"
	"github.com/GlebRadaev/thetop36/pkg/utils"
)

//go:generate mockgen -source=draw.go -destination=mock_draw.go -package=draw

const SecretHeader = "X-Cron-Secret"

type Service interface {
	Run(ctx context.Context) (*drawservice.Result, error)
}

type DrawHandler struct {
	drawService Service
	cronSecret  string
}

func New(drawService Service, cronSecret string) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
		cronSecret:  cronSecret,
	}
}

// Run godoc
//
//	@Summary		Run the daily draw
//	@Description	Pick today's ticket-weighted winner once; repeated calls return the stored winner
//	@Tags			Draw
//	@Produce		json
//	@Param			X-Cron-Secret	header		string	false	"Scheduler secret"
//	@Param			secret			query		string	false	"Scheduler secret"
//	@Success		200				{object}	dto.DrawResponseDTO
//	@Failure		401				{object}	utils.Response	"Unauthorized"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/api/draw/run [post]
//	@Router			/api/draw/run [get]
func (h *DrawHandler) Run(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get(SecretHeader)
	if secret == "" {
		secret = r.URL.Query().Get("secret")
	}
	if !h.authorized(secret) {
		zap.L().Warn("unauthorized draw attempt", zap.String("remote_addr", r.RemoteAddr))
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.drawService.Run(r.Context())
	if err != nil {
		zap.L().Error("daily draw failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.DrawResponseDTO{OK: true, Status: string(result.Status)}
	switch result.Status {
	case drawservice.StatusNoEligibleUsers:
		resp.Message = "No eligible users"
	case drawservice.StatusAlreadyDrawn:
		resp.Message = "Winner already selected today"
	}
	if result.Winner != nil {
		resp.Winner = &dto.DrawWinnerDTO{
			Email:    result.Winner.Email,
			Prize:    result.Winner.Prize,
			DrawDate: result.Winner.DrawDay,
			Tickets:  result.Winner.Tickets,
		}
		resp.Stats = &dto.DrawStatsDTO{
			TotalTickets: result.TotalTickets,
			TotalUsers:   result.TotalUsers,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *DrawHandler) authorized(secret string) bool {
	if h.cronSecret == "" || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(h.cronSecret)) == 1
}
