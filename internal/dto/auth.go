package dto

import "github.com/GlebRadaev/thetop36/internal/domain"

type LoginRequestDTO struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
}

type UserDTO struct {
	Email      string `json:"email" example:"alice@example.com"`
	Tickets    int    `json:"tickets" example:"3"`
	Referrals  int    `json:"referrals" example:"1"`
	TotalScore int    `json:"totalScore" example:"4"`
}

type LoginResponseDTO struct {
	OK   bool    `json:"ok"`
	User UserDTO `json:"user"`
}

type MeResponseDTO struct {
	Authed bool     `json:"authed"`
	User   *UserDTO `json:"user,omitempty"`
}

func NewUserDTO(user *domain.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		Email:      user.Email,
		Tickets:    user.Tickets,
		Referrals:  user.Referrals,
		TotalScore: user.TotalScore(),
	}
}
