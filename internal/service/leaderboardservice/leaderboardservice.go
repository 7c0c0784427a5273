package leaderboardservice

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/thetop36/internal/domain"
)

//go:generate mockgen -source=leaderboardservice.go -destination=mock_leaderboardservice.go -package=leaderboardservice

const Limit = 100

type UserRepo interface {
	FindTop(ctx context.Context, limit int) ([]domain.User, error)
	Stats(ctx context.Context) (*domain.LeaderboardStats, error)
}

type WinnerRepo interface {
	FindLatest(ctx context.Context, limit int) ([]domain.Winner, error)
	CountAll(ctx context.Context) (int, error)
	CountByDay(ctx context.Context, day string) (int, error)
}

type Leaderboard struct {
	Users []domain.User
	Stats domain.LeaderboardStats
}

type Winners struct {
	Winners []domain.Winner
	Stats   domain.WinnerStats
}

type Service struct {
	userRepo   UserRepo
	winnerRepo WinnerRepo
	location   *time.Location
	now        func() time.Time
}

func New(userRepo UserRepo, winnerRepo WinnerRepo, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		userRepo:   userRepo,
		winnerRepo: winnerRepo,
		location:   location,
		now:        time.Now,
	}
}

func (s *Service) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	result := &Leaderboard{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.userRepo.FindTop(ctx, Limit)
		if err != nil {
			return err
		}
		result.Users = users
		return nil
	})
	g.Go(func() error {
		stats, err := s.userRepo.Stats(ctx)
		if err != nil {
			return err
		}
		result.Stats = *stats
		return nil
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("can't load leaderboard", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (s *Service) Winners(ctx context.Context) (*Winners, error) {
	result := &Winners{}
	today := domain.DayKey(s.now(), s.location)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		winners, err := s.winnerRepo.FindLatest(ctx, Limit)
		if err != nil {
			return err
		}
		result.Winners = winners
		return nil
	})
	g.Go(func() error {
		total, err := s.winnerRepo.CountAll(ctx)
		if err != nil {
			return err
		}
		result.Stats.TotalWinners = total
		return nil
	})
	g.Go(func() error {
		count, err := s.winnerRepo.CountByDay(ctx, today)
		if err != nil {
			return err
		}
		result.Stats.TodayWinners = count
		return nil
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("can't load winners", zap.Error(err))
		return nil, err
	}
	return result, nil
}
