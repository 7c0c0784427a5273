package drawservice

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/internal/realtime"
	"github.com/GlebRadaev/thetop36/pkg/metrics"
)

//go:generate mockgen -source=drawservice.go -destination=mock_drawservice.go -package=drawservice

type UserRepo interface {
	FindEligible(ctx context.Context) ([]domain.User, error)
}

type WinnerRepo interface {
	FindByDay(ctx context.Context, day string) (*domain.Winner, error)
	Create(ctx context.Context, winner *domain.Winner) (bool, error)
}

// DrawCache remembers the last drawn day. It only saves a store round trip.
type DrawCache interface {
	WasDrawn(ctx context.Context, day string) (bool, error)
	MarkDrawn(ctx context.Context, day string) error
}

type Publisher interface {
	Publish(eventType string, payload any) int
}

type Status string

const (
	StatusDrawn           Status = "drawn"
	StatusAlreadyDrawn    Status = "already_drawn"
	StatusNoEligibleUsers Status = "no_eligible_users"
)

type Result struct {
	Status       Status
	Day          string
	Winner       *domain.Winner
	TotalTickets int
	TotalUsers   int
}

type WinnerUpdate struct {
	Email        string `json:"email"`
	Prize        string `json:"prize"`
	DrawDate     string `json:"drawDate"`
	TotalTickets int    `json:"totalTickets"`
	TotalUsers   int    `json:"totalUsers"`
}

type Service struct {
	users     UserRepo
	winners   WinnerRepo
	cache     DrawCache
	publisher Publisher

	prize    string
	location *time.Location
	now      func() time.Time
	intn     func(n int) int
}

func New(users UserRepo, winners WinnerRepo, cache DrawCache, publisher Publisher, prize string, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		users:     users,
		winners:   winners,
		cache:     cache,
		publisher: publisher,
		prize:     prize,
		location:  location,
		now:       time.Now,
		intn:      rand.IntN,
	}
}

// Run draws today's winner once. Repeated calls on the same day return the stored winner.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	now := s.now()
	day := domain.DayKey(now, s.location)

	drawn, err := s.cache.WasDrawn(ctx, day)
	if err != nil {
		zap.L().Warn("draw cache unavailable", zap.String("day", day), zap.Error(err))
	}

	existing, err := s.winners.FindByDay(ctx, day)
	if err != nil {
		metrics.DrawRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("find winner for %s: %w", day, err)
	}
	if existing != nil {
		s.markDrawn(ctx, day)
		metrics.DrawRuns.WithLabelValues(string(StatusAlreadyDrawn)).Inc()
		return &Result{
			Status:       StatusAlreadyDrawn,
			Day:          day,
			Winner:       existing,
			TotalTickets: existing.TotalTickets,
			TotalUsers:   existing.TotalUsers,
		}, nil
	}

	if drawn {
		zap.L().Warn("draw cache is ahead of the store, drawing anyway", zap.String("day", day))
	}

	users, err := s.users.FindEligible(ctx)
	if err != nil {
		metrics.DrawRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load eligible users: %w", err)
	}
	totalTickets := 0
	for _, u := range users {
		totalTickets += u.Tickets
	}
	if len(users) == 0 || totalTickets <= 0 {
		zap.L().Info("no eligible users for draw", zap.String("day", day))
		metrics.DrawRuns.WithLabelValues(string(StatusNoEligibleUsers)).Inc()
		return &Result{Status: StatusNoEligibleUsers, Day: day}, nil
	}

	selected := SelectWinner(users, s.intn)
	winner := &domain.Winner{
		Email:        selected.Email,
		Prize:        s.prize,
		DrawDay:      day,
		DrawnAt:      now,
		Tickets:      selected.Tickets,
		TotalTickets: totalTickets,
		TotalUsers:   len(users),
	}

	created, err := s.winners.Create(ctx, winner)
	if err != nil {
		metrics.DrawRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("save winner for %s: %w", day, err)
	}
	if !created {
		existing, err := s.winners.FindByDay(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("find winner for %s: %w", day, err)
		}
		zap.L().Info("concurrent draw already stored a winner", zap.String("day", day))
		s.markDrawn(ctx, day)
		metrics.DrawRuns.WithLabelValues(string(StatusAlreadyDrawn)).Inc()
		result := &Result{Status: StatusAlreadyDrawn, Day: day, Winner: existing}
		if existing != nil {
			result.TotalTickets = existing.TotalTickets
			result.TotalUsers = existing.TotalUsers
		}
		return result, nil
	}

	s.markDrawn(ctx, day)
	zap.L().Info("daily winner drawn",
		zap.String("day", day),
		zap.String("email", winner.Email),
		zap.Int("tickets", winner.Tickets),
		zap.Int("total_tickets", totalTickets),
		zap.Int("total_users", len(users)),
	)
	metrics.DrawRuns.WithLabelValues(string(StatusDrawn)).Inc()
	s.publisher.Publish(realtime.EventWinnerUpdate, WinnerUpdate{
		Email:        winner.Email,
		Prize:        winner.Prize,
		DrawDate:     day,
		TotalTickets: totalTickets,
		TotalUsers:   len(users),
	})

	return &Result{
		Status:       StatusDrawn,
		Day:          day,
		Winner:       winner,
		TotalTickets: totalTickets,
		TotalUsers:   len(users),
	}, nil
}

func (s *Service) markDrawn(ctx context.Context, day string) {
	if err := s.cache.MarkDrawn(ctx, day); err != nil {
		zap.L().Warn("can't update draw cache", zap.String("day", day), zap.Error(err))
	}
}

// SelectWinner picks a user with probability proportional to its tickets.
// intn must return a value in [0, n). Users must be in a stable order.
func SelectWinner(users []domain.User, intn func(n int) int) domain.User {
	total := 0
	for _, u := range users {
		if u.Tickets > 0 {
			total += u.Tickets
		}
	}
	if total > 0 {
		remaining := intn(total) + 1
		for _, u := range users {
			if u.Tickets <= 0 {
				continue
			}
			remaining -= u.Tickets
			if remaining <= 0 {
				return u
			}
		}
	}
	return users[intn(len(users))]
}
