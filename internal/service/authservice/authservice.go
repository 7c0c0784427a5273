package authservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/pkg/auth"
	"github.com/GlebRadaev/thetop36/pkg/validate"
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpsertByEmail(ctx context.Context, email string) (*domain.User, error)
}

var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrUserNotFound = errors.New("user not found")
)

type Service struct {
	userRepo   Repo
	jwtService auth.JWTServiceInterface
	now        func() time.Time
}

func New(repo Repo, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:   repo,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// Login creates the user on first sight; the email is the only credential.
func (s *Service) Login(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if !validate.IsEmail(email) {
		return nil, ErrInvalidEmail
	}
	user, err := s.userRepo.UpsertByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't upsert user: ", zap.Error(err))
		return nil, err
	}
	zap.L().Info("user logged in", zap.String("email", email))
	return user, nil
}

func (s *Service) GenerateToken(email string) (string, error) {
	token, err := s.jwtService.GenerateJWT(email, s.now().Add(auth.TokenTTL))
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) Me(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
