package winnerrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/internal/pg"
)

const winnerColumns = "id, email, prize, to_char(draw_day, 'YYYY-MM-DD'), drawn_at, tickets, total_tickets, total_users"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanWinner(row pgx.Row) (*domain.Winner, error) {
	var w domain.Winner
	err := row.Scan(&w.ID, &w.Email, &w.Prize, &w.DrawDay, &w.DrawnAt, &w.Tickets, &w.TotalTickets, &w.TotalUsers)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) FindByDay(ctx context.Context, day string) (*domain.Winner, error) {
	query := `
		SELECT ` + winnerColumns + `
		FROM winners
		WHERE draw_day = $1::date
	`
	winner, err := scanWinner(r.db.QueryRow(ctx, query, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find winner", zap.String("day", day), zap.Error(err))
		return nil, err
	}
	return winner, nil
}

// Create inserts the winner unless the day already has one; it reports whether the row was written.
func (r *Repository) Create(ctx context.Context, winner *domain.Winner) (bool, error) {
	query := `
		INSERT INTO winners (email, prize, draw_day, drawn_at, tickets, total_tickets, total_users)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		ON CONFLICT (draw_day) DO NOTHING
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		winner.Email, winner.Prize, winner.DrawDay, winner.DrawnAt,
		winner.Tickets, winner.TotalTickets, winner.TotalUsers,
	).Scan(&winner.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		zap.L().Error("can't save winner", zap.String("day", winner.DrawDay), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *Repository) FindLatest(ctx context.Context, limit int) ([]domain.Winner, error) {
	query := `
		SELECT ` + winnerColumns + `
		FROM winners
		ORDER BY draw_day DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("can't get winners", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var winners []domain.Winner
	for rows.Next() {
		winner, err := scanWinner(rows)
		if err != nil {
			zap.L().Error("can't scan winner row", zap.Error(err))
			return nil, err
		}
		winners = append(winners, *winner)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return winners, nil
}

func (r *Repository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM winners").Scan(&count); err != nil {
		zap.L().Error("can't count winners", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) CountByDay(ctx context.Context, day string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM winners WHERE draw_day = $1::date", day).Scan(&count); err != nil {
		zap.L().Error("can't count winners for day", zap.String("day", day), zap.Error(err))
		return 0, err
	}
	return count, nil
}
