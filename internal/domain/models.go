package domain

import (
	"strings"
	"time"
)

type User struct {
	ID        int       `db:"id"`
	Email     string    `db:"email"`
	Tickets   int       `db:"tickets"`
	Referrals int       `db:"referrals"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u *User) TotalScore() int {
	return u.Tickets + u.Referrals
}

type Winner struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	Prize        string    `db:"prize"`
	DrawDay      string    `db:"draw_day"`
	DrawnAt      time.Time `db:"drawn_at"`
	Tickets      int       `db:"tickets"`
	TotalTickets int       `db:"total_tickets"`
	TotalUsers   int       `db:"total_users"`
}

const (
	PaymentSourceWebhook = "webhook"
	PaymentSourceConfirm = "confirm"
)

// ProcessedPayment is the durable idempotency marker of one checkout session.
type ProcessedPayment struct {
	ID             int       `db:"id"`
	SessionID      string    `db:"session_id"`
	EventID        string    `db:"event_id"`
	Source         string    `db:"source"`
	Email          string    `db:"email"`
	Referral       string    `db:"referral"`
	ProviderSynced bool      `db:"provider_synced"`
	ProcessedAt    time.Time `db:"processed_at"`
}

// PaymentApplication is the ledger state after a payment was offered to the store.
type PaymentApplication struct {
	Applied  bool
	Payer    *User
	Referrer *User
}

type LeaderboardStats struct {
	TotalUsers     int `db:"total_users"`
	TotalTickets   int `db:"total_tickets"`
	TotalReferrals int `db:"total_referrals"`
}

type WinnerStats struct {
	TotalWinners int
	TodayWinners int
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DayKey formats t as the calendar day in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
