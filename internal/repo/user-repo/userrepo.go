package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/internal/pg"
)

const userColumns = "id, email, tickets, referrals, created_at, updated_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Tickets, &user.Referrals, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	user, err := scanUser(repo.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// UpsertByEmail creates the user with zero counters or touches the existing row.
func (repo *Repository) UpsertByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		INSERT INTO users (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING ` + userColumns
	user, err := scanUser(repo.db.QueryRow(ctx, query, email))
	if err != nil {
		zap.L().Error("can't upsert user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) IncrementTickets(ctx context.Context, email string) (*domain.User, error) {
	query := `
		INSERT INTO users (email, tickets)
		VALUES ($1, 1)
		ON CONFLICT (email) DO UPDATE SET tickets = users.tickets + 1, updated_at = now()
		RETURNING ` + userColumns
	user, err := scanUser(repo.db.QueryRow(ctx, query, email))
	if err != nil {
		zap.L().Error("can't increment tickets", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) IncrementReferrals(ctx context.Context, email string) (*domain.User, error) {
	query := `
		INSERT INTO users (email, referrals)
		VALUES ($1, 1)
		ON CONFLICT (email) DO UPDATE SET referrals = users.referrals + 1, updated_at = now()
		RETURNING ` + userColumns
	user, err := scanUser(repo.db.QueryRow(ctx, query, email))
	if err != nil {
		zap.L().Error("can't increment referrals", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// FindEligible returns users holding tickets in a stable order for the draw walk.
func (repo *Repository) FindEligible(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE tickets > 0
		ORDER BY id ASC
	`
	return repo.list(ctx, query)
}

func (repo *Repository) FindTop(ctx context.Context, limit int) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY tickets DESC, referrals DESC, id ASC
		LIMIT $1
	`
	return repo.list(ctx, query, limit)
}

func (repo *Repository) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			zap.L().Error("can't scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate user rows", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (repo *Repository) Stats(ctx context.Context) (*domain.LeaderboardStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(tickets), 0), COALESCE(SUM(referrals), 0)
		FROM users
	`
	var stats domain.LeaderboardStats
	err := repo.db.QueryRow(ctx, query).Scan(&stats.TotalUsers, &stats.TotalTickets, &stats.TotalReferrals)
	if err != nil {
		zap.L().Error("can't get leaderboard stats", zap.Error(err))
		return nil, err
	}
	return &stats, nil
}
