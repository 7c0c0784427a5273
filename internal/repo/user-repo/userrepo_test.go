package userrepo

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

	"github.com/GlebRadaev/thetop36/internal/domain"
)

var columns = []string{"id", "email", "tickets", "referrals", "created_at", "updated_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := New(mockDB)

	return repo, mockDB
}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta("SELECT id, email, tickets, referrals, created_at, updated_at FROM users WHERE email = $1")

	tests := []struct {
		name      string
		email     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User found",
			email: "alice@x.com",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).AddRow(1, "alice@x.com", 2, 1, now, now)
				mock.ExpectQuery(query).WithArgs("alice@x.com").WillReturnRows(rows)
			},
			result: &domain.User{ID: 1, Email: "alice@x.com", Tickets: 2, Referrals: 1, CreatedAt: now, UpdatedAt: now},
		},
		{
			name:  "User not found",
			email: "nobody@x.com",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("nobody@x.com").WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			email: "alice@x.com",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("alice@x.com").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByEmail(context.Background(), tt.email)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertByEmail(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta("INSERT INTO users (email) VALUES ($1) ON CONFLICT (email) DO UPDATE SET updated_at = now() RETURNING id, email")

	t.Run("New user starts with zero counters", func(t *testing.T) {
		rows := pgxmock.NewRows(columns).AddRow(7, "carol@z.com", 0, 0, now, now)
		mock.ExpectQuery(query).WithArgs("carol@z.com").WillReturnRows(rows)

		user, err := repo.UpsertByEmail(context.Background(), "carol@z.com")
		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.Zero(t, user.Tickets)
		assert.Zero(t, user.Referrals)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("carol@z.com").WillReturnError(errors.New("database error"))

		user, err := repo.UpsertByEmail(context.Background(), "carol@z.com")
		assert.Error(t, err)
		assert.Nil(t, user)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Increments(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	ticketsQuery := regexp.QuoteMeta("INSERT INTO users (email, tickets) VALUES ($1, 1) ON CONFLICT (email) DO UPDATE SET tickets = users.tickets + 1")
	referralsQuery := regexp.QuoteMeta("INSERT INTO users (email, referrals) VALUES ($1, 1) ON CONFLICT (email) DO UPDATE SET referrals = users.referrals + 1")

	mock.ExpectQuery(ticketsQuery).WithArgs("alice@x.com").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(1, "alice@x.com", 1, 0, now, now))
	mock.ExpectQuery(referralsQuery).WithArgs("bob@y.com").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(2, "bob@y.com", 0, 1, now, now))
	mock.ExpectQuery(ticketsQuery).WithArgs("alice@x.com").WillReturnError(errors.New("database error"))
	mock.ExpectQuery(referralsQuery).WithArgs("bob@y.com").WillReturnError(errors.New("database error"))

	payer, err := repo.IncrementTickets(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, payer.Tickets)

	referrer, err := repo.IncrementReferrals(context.Background(), "bob@y.com")
	require.NoError(t, err)
	assert.Equal(t, 1, referrer.Referrals)

	_, err = repo.IncrementTickets(context.Background(), "alice@x.com")
	assert.Error(t, err)
	_, err = repo.IncrementReferrals(context.Background(), "bob@y.com")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindEligible(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta("SELECT id, email, tickets, referrals, created_at, updated_at FROM users WHERE tickets > 0 ORDER BY id ASC")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.User
	}{
		{
			name: "Users found",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow(1, "a@x.com", 1, 0, now, now).
					AddRow(2, "b@x.com", 3, 2, now, now)
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			result: []domain.User{
				{ID: 1, Email: "a@x.com", Tickets: 1, CreatedAt: now, UpdatedAt: now},
				{ID: 2, Email: "b@x.com", Tickets: 3, Referrals: 2, CreatedAt: now, UpdatedAt: now},
			},
		},
		{
			name: "No users",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows(columns))
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
		{
			name: "Scan row error",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).AddRow(1, "a@x.com", "invalid", 0, now, now)
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindEligible(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_FindTop(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta("FROM users ORDER BY tickets DESC, referrals DESC, id ASC LIMIT $1")

	rows := pgxmock.NewRows(columns).
		AddRow(2, "b@x.com", 3, 0, now, now).
		AddRow(1, "a@x.com", 1, 4, now, now)
	mock.ExpectQuery(query).WithArgs(100).WillReturnRows(rows)

	result, err := repo.FindTop(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "b@x.com", result[0].Email)
	assert.Equal(t, "a@x.com", result[1].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Stats(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SELECT COUNT(*), COALESCE(SUM(tickets), 0), COALESCE(SUM(referrals), 0) FROM users")

	mock.ExpectQuery(query).WillReturnRows(
		pgxmock.NewRows([]string{"count", "tickets", "referrals"}).AddRow(3, 10, 4),
	)
	mock.ExpectQuery(query).WillReturnError(errors.New("database error"))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.LeaderboardStats{TotalUsers: 3, TotalTickets: 10, TotalReferrals: 4}, stats)

	stats, err = repo.Stats(context.Background())
	assert.Error(t, err)
	assert.Nil(t, stats)
}
