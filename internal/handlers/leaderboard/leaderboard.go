package leaderboard

import (
	"context"
	"net/http"
	"time"

	"github.com/GlebRadaev/thetop36/internal/dto"
	"github.com/GlebRadaev/thetop36/internal/service/leaderboardservice"
	"github.com/GlebRadaev/thetop36/pkg/utils"
)

//go:generate mockgen -source=leaderboard.go -destination=mock_leaderboard.go -package=leaderboard

type Service interface {
	Leaderboard(ctx context.Context) (*leaderboardservice.Leaderboard, error)
	Winners(ctx context.Context) (*leaderboardservice.Winners, error)
}

type LeaderboardHandler struct {
	leaderboardService Service
}

func New(leaderboardService Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Leaderboard godoc
//
//	@Summary		Top users
//	@Description	Top 100 users ordered by total score, with global totals
//	@Tags			Leaderboard
//	@Produce		json
//	@Success		200	{object}	dto.LeaderboardResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/leaderboard [get]
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.leaderboardService.Leaderboard(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	users := make([]dto.UserDTO, 0, len(board.Users))
	for i := range board.Users {
		users = append(users, *dto.NewUserDTO(&board.Users[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.LeaderboardResponseDTO{
		Users: users,
		Stats: dto.LeaderboardStatsDTO{
			TotalUsers:     board.Stats.TotalUsers,
			TotalTickets:   board.Stats.TotalTickets,
			TotalReferrals: board.Stats.TotalReferrals,
		},
	})
}

// Winners godoc
//
//	@Summary		Recent winners
//	@Description	Latest 100 daily draw winners, newest first
//	@Tags			Leaderboard
//	@Produce		json
//	@Success		200	{object}	dto.WinnersResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/winners [get]
func (h *LeaderboardHandler) Winners(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaderboardService.Winners(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	winners := make([]dto.WinnerDTO, 0, len(result.Winners))
	for _, winner := range result.Winners {
		winners = append(winners, dto.WinnerDTO{
			Email:        winner.Email,
			Prize:        winner.Prize,
			DrawDate:     winner.DrawDay,
			DrawnAt:      winner.DrawnAt.UTC().Format(time.RFC3339),
			Tickets:      winner.Tickets,
			TotalTickets: winner.TotalTickets,
			TotalUsers:   winner.TotalUsers,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WinnersResponseDTO{
		Winners: winners,
		Stats: dto.WinnersStatsDTO{
			TotalWinners: result.Stats.TotalWinners,
			TodayWinners: result.Stats.TodayWinners,
		},
	})
}
