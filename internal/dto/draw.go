package dto

type DrawWinnerDTO struct {
	Email    string `json:"email" example:"alice@example.com"`
	Prize    string `json:"prize" example:"Daily Micro Prize"`
	DrawDate string `json:"drawDate" example:"2025-03-01"`
	Tickets  int    `json:"tickets" example:"3"`
}

type DrawStatsDTO struct {
	TotalTickets int `json:"totalTickets" example:"42"`
	TotalUsers   int `json:"totalUsers" example:"17"`
}

type DrawResponseDTO struct {
	OK      bool           `json:"ok"`
	Status  string         `json:"status" example:"drawn"`
	Message string         `json:"message,omitempty" example:"Winner already selected today"`
	Winner  *DrawWinnerDTO `json:"winner,omitempty"`
	Stats   *DrawStatsDTO  `json:"stats,omitempty"`
}
