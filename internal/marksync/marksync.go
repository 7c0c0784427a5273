package marksync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/pkg/metrics"
	"github.com/GlebRadaev/thetop36/pkg/stripe"
)

//go:generate mockgen -source=marksync.go -destination=mock_marksync.go -package=marksync

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

type Repo interface {
	FindUnsynced(ctx context.Context, limit uint32) ([]domain.ProcessedPayment, error)
	MarkSynced(ctx context.Context, id int) error
	PruneSynced(ctx context.Context, before time.Time) (int64, error)
}

type MetadataUpdater interface {
	UpdateSessionMetadata(ctx context.Context, sessionID string, metadata map[string]string) error
}

type Config struct {
	Interval      time.Duration
	PruneInterval time.Duration
	Retention     time.Duration
	Limit         uint32
	Workers       int
}

// Service mirrors applied payments to the provider as metadata[processed]=true
// and prunes local markers once they are mirrored and old enough.
type Service struct {
	repo       Repo
	updater    MetadataUpdater
	workerPool WorkerPoolI

	limit         uint32
	interval      time.Duration
	pruneInterval time.Duration
	retention     time.Duration

	inFlight sync.Map
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func New(cfg Config, repo Repo, updater MetadataUpdater) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = time.Hour
	}
	if cfg.Limit == 0 {
		cfg.Limit = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Service{
		repo:          repo,
		updater:       updater,
		workerPool:    NewWorkerPool(cfg.Workers),
		limit:         cfg.Limit,
		interval:      cfg.Interval,
		pruneInterval: cfg.PruneInterval,
		retention:     cfg.Retention,
		now:           time.Now,
		sleep:         sleepContext,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Provider marker sync started", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	pruneTicker := time.NewTicker(s.pruneInterval)
	defer pruneTicker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping provider marker sync")
			return
		case <-ticker.C:
			s.SyncPending(ctx)
		case <-pruneTicker.C:
			s.Prune(ctx)
		}
	}
}

// SyncPending hands every unsynced marker to the worker pool, skipping those still in flight.
func (s *Service) SyncPending(ctx context.Context) {
	payments, err := s.repo.FindUnsynced(ctx, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch unsynced payments", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, payment := range payments {
		payment := payment

		if _, loaded := s.inFlight.LoadOrStore(payment.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(payment.ID)
				return s.syncPayment(ctx, payment)
			})
			if err != nil {
				s.inFlight.Delete(payment.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error dispatching provider sync", zap.Error(err))
	}
}

func (s *Service) syncPayment(ctx context.Context, payment domain.ProcessedPayment) error {
	metadata := map[string]string{stripe.MetadataProcessed: "true"}
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = s.updater.UpdateSessionMetadata(ctx, payment.SessionID, metadata)
		if err == nil {
			return s.markSynced(ctx, payment, "synced")
		}
		if errors.Is(err, stripe.ErrNotConfigured) {
			metrics.ProviderSyncs.WithLabelValues("failed").Inc()
			return err
		}

		wait := retryInterval * time.Duration(attempt)
		switch status := stripe.StatusCode(err); {
		case status == http.StatusNotFound:
			zap.L().Warn("Checkout session not found at provider, marking synced", zap.String("session_id", payment.SessionID))
			return s.markSynced(ctx, payment, "not_found")
		case status == http.StatusTooManyRequests:
			zap.L().Warn(
				"Rate limit detected, retrying",
				zap.String("session_id", payment.SessionID),
				zap.Int("attempt", attempt),
				zap.Duration("retryAfter", wait),
			)
		case status > 0 && status < http.StatusInternalServerError:
			// A 4xx will not change on retry.
			zap.L().Warn("Provider rejected marker, giving up",
				zap.String("session_id", payment.SessionID), zap.Int("status", status), zap.Error(err))
			return s.markSynced(ctx, payment, "rejected")
		}

		if attempt < maxRetries {
			if err := s.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}

	metrics.ProviderSyncs.WithLabelValues("failed").Inc()
	return fmt.Errorf("failed to sync session %s after %d retries: %w", payment.SessionID, maxRetries, err)
}

func (s *Service) markSynced(ctx context.Context, payment domain.ProcessedPayment, result string) error {
	if err := s.repo.MarkSynced(ctx, payment.ID); err != nil {
		metrics.ProviderSyncs.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to mark payment %d synced: %w", payment.ID, err)
	}
	metrics.ProviderSyncs.WithLabelValues(result).Inc()
	zap.L().Debug("Provider marker synced", zap.String("session_id", payment.SessionID), zap.String("result", result))
	return nil
}

// Prune removes mirrored markers older than the retention window. A zero retention keeps everything.
func (s *Service) Prune(ctx context.Context) {
	if s.retention <= 0 {
		return
	}
	removed, err := s.repo.PruneSynced(ctx, s.now().Add(-s.retention))
	if err != nil {
		zap.L().Error("Failed to prune processed payments", zap.Error(err))
		return
	}
	if removed > 0 {
		zap.L().Info("Pruned processed payments", zap.Int64("removed", removed))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
