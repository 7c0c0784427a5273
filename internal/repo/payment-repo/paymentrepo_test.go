package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/internal/pg"
	userrepo "github.com/GlebRadaev/thetop36/internal/repo/user-repo"
)

var (
	userColumns    = []string{"id", "email", "tickets", "referrals", "created_at", "updated_at"}
	paymentColumns = []string{"id", "session_id", "event_id", "source", "email", "referral", "provider_synced", "processed_at"}

	insertMarker    = regexp.QuoteMeta("INSERT INTO processed_payments (session_id, event_id, source, email, referral) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (session_id) DO NOTHING RETURNING id, processed_at")
	incTickets      = regexp.QuoteMeta("INSERT INTO users (email, tickets) VALUES ($1, 1) ON CONFLICT (email) DO UPDATE SET tickets = users.tickets + 1")
	incReferrals    = regexp.QuoteMeta("INSERT INTO users (email, referrals) VALUES ($1, 1) ON CONFLICT (email) DO UPDATE SET referrals = users.referrals + 1")
	findUserByEmail = regexp.QuoteMeta("SELECT id, email, tickets, referrals, created_at, updated_at FROM users WHERE email = $1")
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := New(mockDB, mockTxManager, userrepo.New(mockDB))

	return repo, mockDB, mockTxManager
}

func runInTx(tx *pg.MockTXManager) {
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

func TestRepository_ApplyPayment(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		payment     *domain.ProcessedPayment
		mockSetup   func(mock pgxmock.PgxPoolIface)
		expectErr   bool
		applied     bool
		payerTix    int
		hasReferrer bool
	}{
		{
			name: "Payment with referral increments both counters",
			payment: &domain.ProcessedPayment{
				SessionID: "cs_1", EventID: "evt_1", Source: domain.PaymentSourceWebhook,
				Email: "alice@x.com", Referral: "bob@y.com",
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertMarker).
					WithArgs("cs_1", "evt_1", "webhook", "alice@x.com", "bob@y.com").
					WillReturnRows(pgxmock.NewRows([]string{"id", "processed_at"}).AddRow(1, now))
				mock.ExpectQuery(incTickets).WithArgs("alice@x.com").
					WillReturnRows(pgxmock.NewRows(userColumns).AddRow(1, "alice@x.com", 1, 0, now, now))
				mock.ExpectQuery(incReferrals).WithArgs("bob@y.com").
					WillReturnRows(pgxmock.NewRows(userColumns).AddRow(2, "bob@y.com", 0, 1, now, now))
			},
			applied:     true,
			payerTix:    1,
			hasReferrer: true,
		},
		{
			name: "Payment without referral",
			payment: &domain.ProcessedPayment{
				SessionID: "cs_2", Source: domain.PaymentSourceConfirm, Email: "carol@z.com",
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertMarker).
					WithArgs("cs_2", "", "confirm", "carol@z.com", "").
					WillReturnRows(pgxmock.NewRows([]string{"id", "processed_at"}).AddRow(2, now))
				mock.ExpectQuery(incTickets).WithArgs("carol@z.com").
					WillReturnRows(pgxmock.NewRows(userColumns).AddRow(3, "carol@z.com", 4, 0, now, now))
			},
			applied:  true,
			payerTix: 4,
		},
		{
			name: "Already processed session leaves ledger untouched",
			payment: &domain.ProcessedPayment{
				SessionID: "cs_1", EventID: "evt_1", Source: domain.PaymentSourceWebhook,
				Email: "alice@x.com", Referral: "bob@y.com",
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertMarker).
					WithArgs("cs_1", "evt_1", "webhook", "alice@x.com", "bob@y.com").
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery(findUserByEmail).WithArgs("alice@x.com").
					WillReturnRows(pgxmock.NewRows(userColumns).AddRow(1, "alice@x.com", 1, 0, now, now))
			},
			applied:  false,
			payerTix: 1,
		},
		{
			name: "Marker insert fails",
			payment: &domain.ProcessedPayment{
				SessionID: "cs_3", Source: domain.PaymentSourceWebhook, Email: "alice@x.com",
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertMarker).
					WithArgs("cs_3", "", "webhook", "alice@x.com", "").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
		{
			name: "Referral increment fails",
			payment: &domain.ProcessedPayment{
				SessionID: "cs_4", Source: domain.PaymentSourceWebhook, Email: "alice@x.com", Referral: "bob@y.com",
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertMarker).
					WithArgs("cs_4", "", "webhook", "alice@x.com", "bob@y.com").
					WillReturnRows(pgxmock.NewRows([]string{"id", "processed_at"}).AddRow(4, now))
				mock.ExpectQuery(incTickets).WithArgs("alice@x.com").
					WillReturnRows(pgxmock.NewRows(userColumns).AddRow(1, "alice@x.com", 2, 0, now, now))
				mock.ExpectQuery(incReferrals).WithArgs("bob@y.com").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, tx := NewMock(t)
			runInTx(tx)
			tt.mockSetup(mock)

			result, err := repo.ApplyPayment(context.Background(), tt.payment)
			require.NoError(t, mock.ExpectationsWereMet())
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.applied, result.Applied)
			require.NotNil(t, result.Payer)
			assert.Equal(t, tt.payerTix, result.Payer.Tickets)
			assert.Equal(t, tt.hasReferrer, result.Referrer != nil)
		})
	}
}

func TestRepository_FindUnsynced(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta("SELECT id, session_id, event_id, source, email, referral, provider_synced, processed_at FROM processed_payments WHERE provider_synced = FALSE ORDER BY processed_at ASC LIMIT $1")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.ProcessedPayment
	}{
		{
			name: "Payments found",
			mockSetup: func() {
				rows := pgxmock.NewRows(paymentColumns).
					AddRow(1, "cs_1", "evt_1", "webhook", "alice@x.com", "", false, now)
				mock.ExpectQuery(query).WithArgs(10).WillReturnRows(rows)
			},
			result: []domain.ProcessedPayment{
				{ID: 1, SessionID: "cs_1", EventID: "evt_1", Source: "webhook", Email: "alice@x.com", ProcessedAt: now},
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(10).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
		{
			name: "Scan row error",
			mockSetup: func() {
				rows := pgxmock.NewRows(paymentColumns).
					AddRow("invalid", "cs_1", "evt_1", "webhook", "alice@x.com", "", false, now)
				mock.ExpectQuery(query).WithArgs(10).WillReturnRows(rows)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindUnsynced(context.Background(), 10)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_MarkSynced(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("UPDATE processed_payments SET provider_synced = TRUE WHERE id = $1")

	mock.ExpectExec(query).WithArgs(1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(query).WithArgs(2).WillReturnError(errors.New("database error"))

	assert.NoError(t, repo.MarkSynced(context.Background(), 1))
	assert.Error(t, repo.MarkSynced(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PruneSynced(t *testing.T) {
	repo, mock, _ := NewMock(t)
	before := time.Now().Add(-720 * time.Hour)
	query := regexp.QuoteMeta("DELETE FROM processed_payments WHERE provider_synced = TRUE AND processed_at < $1")

	mock.ExpectExec(query).WithArgs(before).WillReturnResult(pgxmock.NewResult("DELETE", 5))
	mock.ExpectExec(query).WithArgs(before).WillReturnError(errors.New("database error"))

	deleted, err := repo.PruneSynced(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)

	_, err = repo.PruneSynced(context.Background(), before)
	assert.Error(t, err)
}
