package dto

type LeaderboardStatsDTO struct {
	TotalUsers     int `json:"totalUsers" example:"17"`
	TotalTickets   int `json:"totalTickets" example:"42"`
	TotalReferrals int `json:"totalReferrals" example:"5"`
}

type LeaderboardResponseDTO struct {
	Users []UserDTO           `json:"users"`
	Stats LeaderboardStatsDTO `json:"stats"`
}

type WinnerDTO struct {
	Email        string `json:"email" example:"alice@example.com"`
	Prize        string `json:"prize" example:"Daily Micro Prize"`
	DrawDate     string `json:"drawDate" example:"2025-03-01"`
	DrawnAt      string `json:"drawnAt" example:"2025-03-01T00:05:00Z"`
	Tickets      int    `json:"tickets" example:"3"`
	TotalTickets int    `json:"totalTickets" example:"42"`
	TotalUsers   int    `json:"totalUsers" example:"17"`
}

type WinnersStatsDTO struct {
	TotalWinners int `json:"totalWinners" example:"30"`
	TodayWinners int `json:"todayWinners" example:"1"`
}

type WinnersResponseDTO struct {
	Winners []WinnerDTO     `json:"winners"`
	Stats   WinnersStatsDTO `json:"stats"`
}

type RealtimeStatsDTO struct {
	TotalClients     int    `json:"totalClients" example:"3"`
	OldestConnection *int64 `json:"oldestConnection,omitempty" example:"1740830000000"`
	NewestConnection *int64 `json:"newestConnection,omitempty" example:"1740832000000"`
}
