package paymentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/internal/pg"
)

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	IncrementTickets(ctx context.Context, email string) (*domain.User, error)
	IncrementReferrals(ctx context.Context, email string) (*domain.User, error)
}

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
	users     UserRepo
}

func New(db pg.Database, txManager pg.TXManager, users UserRepo) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
		users:     users,
	}
}

// ApplyPayment records the marker and both counter increments in one transaction.
// A marker that already exists leaves the ledger untouched and reports Applied=false.
func (r *Repository) ApplyPayment(ctx context.Context, payment *domain.ProcessedPayment) (*domain.PaymentApplication, error) {
	query := `
		INSERT INTO processed_payments (session_id, event_id, source, email, referral)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id, processed_at
	`
	result := &domain.PaymentApplication{}
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, payment.SessionID, payment.EventID, payment.Source, payment.Email, payment.Referral).
			Scan(&payment.ID, &payment.ProcessedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			result.Payer, err = r.users.FindByEmail(ctx, payment.Email)
			return err
		}
		if err != nil {
			zap.L().Error("can't record processed payment", zap.String("session_id", payment.SessionID), zap.Error(err))
			return err
		}

		result.Payer, err = r.users.IncrementTickets(ctx, payment.Email)
		if err != nil {
			return err
		}
		if payment.Referral != "" {
			result.Referrer, err = r.users.IncrementReferrals(ctx, payment.Referral)
			if err != nil {
				return err
			}
		}
		result.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) FindUnsynced(ctx context.Context, limit uint32) ([]domain.ProcessedPayment, error) {
	query := `
		SELECT id, session_id, event_id, source, email, referral, provider_synced, processed_at
		FROM processed_payments
		WHERE provider_synced = FALSE
		ORDER BY processed_at ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get unsynced payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.ProcessedPayment
	for rows.Next() {
		var p domain.ProcessedPayment
		err := rows.Scan(&p.ID, &p.SessionID, &p.EventID, &p.Source, &p.Email, &p.Referral, &p.ProviderSynced, &p.ProcessedAt)
		if err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *Repository) MarkSynced(ctx context.Context, id int) error {
	query := `
		UPDATE processed_payments
		SET provider_synced = TRUE
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("failed to mark payment synced", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// PruneSynced removes markers mirrored to the provider and older than before.
func (r *Repository) PruneSynced(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM processed_payments
		WHERE provider_synced = TRUE AND processed_at < $1
	`
	tag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		zap.L().Error("failed to prune processed payments", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
