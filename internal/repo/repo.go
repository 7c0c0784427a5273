package repo

import (
	"github.com/redis/go-redis/v9"

	"github.com/GlebRadaev/thetop36/internal/pg"
	drawcacherepo "github.com/GlebRadaev/thetop36/internal/repo/drawcache-repo"
	paymentrepo "github.com/GlebRadaev/thetop36/internal/repo/payment-repo"
	userrepo "github.com/GlebRadaev/thetop36/internal/repo/user-repo"
	winnerrepo "github.com/GlebRadaev/thetop36/internal/repo/winner-repo"
	"github.com/GlebRadaev/thetop36/internal/service/drawservice"
)

type Repositories struct {
	UserRepo    *userrepo.Repository
	PaymentRepo *paymentrepo.Repository
	WinnerRepo  *winnerrepo.Repository
	DrawCache   drawservice.DrawCache
}

// New wires the Postgres repositories; a nil redis client keeps the draw cache in memory.
func New(conn pg.Database, txManager pg.TXManager, redisClient redis.Cmdable) *Repositories {
	userRepo := userrepo.New(conn)
	paymentRepo := paymentrepo.New(conn, txManager, userRepo)
	winnerRepo := winnerrepo.New(conn)

	var drawCache drawservice.DrawCache = drawcacherepo.NewMemory()
	if redisClient != nil {
		drawCache = drawcacherepo.NewRedis(redisClient)
	}

	return &Repositories{
		UserRepo:    userRepo,
		PaymentRepo: paymentRepo,
		WinnerRepo:  winnerRepo,
		DrawCache:   drawCache,
	}
}
