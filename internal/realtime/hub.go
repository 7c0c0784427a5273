package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/pkg/metrics"
)

const (
	EventLeaderboardUpdate = "leaderboard_update"
	EventWinnerUpdate      = "winner_update"

	DefaultIdleTimeout   = 5 * time.Minute
	DefaultSweepInterval = time.Minute
)

var ErrSubscriberPanicked = errors.New("subscriber delivery panicked")

// DeliverFunc hands one serialized event to a subscriber; an error removes the subscriber.
// It must not block and must not close its own subscription.
type DeliverFunc func(data []byte) error

type Event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp int64  `json:"ts"`
}

type Stats struct {
	Total  int        `json:"total"`
	Oldest *time.Time `json:"oldest,omitempty"`
	Newest *time.Time `json:"newest,omitempty"`
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID atomic.Uint64

	idleTimeout   time.Duration
	sweepInterval time.Duration
	now           func() time.Time
}

func NewHub(idleTimeout, sweepInterval time.Duration) *Hub {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	return &Hub{
		subs:          make(map[uint64]*Subscription),
		idleTimeout:   idleTimeout,
		sweepInterval: sweepInterval,
		now:           time.Now,
	}
}

// Subscription is a registered delivery target. Deliveries to one subscription never overlap.
type Subscription struct {
	hub         *Hub
	id          uint64
	deliver     DeliverFunc
	connectedAt time.Time
	lastSeen    atomic.Int64

	mu      sync.Mutex
	removed bool
	done    chan struct{}
}

func (s *Subscription) ID() uint64 {
	return s.id
}

func (s *Subscription) ConnectedAt() time.Time {
	return s.connectedAt
}

// Touch records keep-alive activity.
func (s *Subscription) Touch() {
	s.lastSeen.Store(s.hub.now().UnixNano())
}

// Done is closed once the subscription has been removed from the hub.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) Close() {
	s.hub.remove(s, "closed")
}

// markRemoved waits for an in-flight delivery and reports whether this call did the removal.
func (s *Subscription) markRemoved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removed {
		return false
	}
	s.removed = true
	close(s.done)
	return true
}

func (s *Subscription) send(data []byte) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removed {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSubscriberPanicked, r)
		}
	}()
	return s.deliver(data)
}

func (h *Hub) Subscribe(deliver DeliverFunc) *Subscription {
	now := h.now()
	sub := &Subscription{
		hub:         h,
		id:          h.nextID.Add(1),
		deliver:     deliver,
		connectedAt: now,
		done:        make(chan struct{}),
	}
	sub.lastSeen.Store(now.UnixNano())

	h.mu.Lock()
	h.subs[sub.id] = sub
	count := len(h.subs)
	h.mu.Unlock()

	metrics.HubSubscribers.Set(float64(count))
	zap.L().Debug("realtime subscriber connected", zap.Uint64("id", sub.id), zap.Int("total", count))
	return sub
}

func (h *Hub) snapshot() []*Subscription {
	h.mu.RLock()
	defer h.mu.RUnlock()
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	return subs
}

// Publish serializes the event once and offers it to every current subscriber.
// A failing subscriber is removed without affecting the others. It returns the number of successful deliveries.
func (h *Hub) Publish(eventType string, payload any) int {
	data, err := json.Marshal(Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: h.now().UnixMilli(),
	})
	if err != nil {
		zap.L().Error("can't encode realtime event", zap.String("type", eventType), zap.Error(err))
		return 0
	}

	delivered := 0
	for _, sub := range h.snapshot() {
		if err := sub.send(data); err != nil {
			zap.L().Warn("realtime delivery failed, removing subscriber",
				zap.Uint64("id", sub.id), zap.String("type", eventType), zap.Error(err))
			metrics.HubDeliveryFailures.Inc()
			h.remove(sub, "delivery failed")
			continue
		}
		delivered++
	}
	metrics.HubEventsPublished.WithLabelValues(eventType).Inc()
	return delivered
}

func (h *Hub) remove(sub *Subscription, reason string) {
	if !sub.markRemoved() {
		return
	}
	h.mu.Lock()
	delete(h.subs, sub.id)
	count := len(h.subs)
	h.mu.Unlock()

	metrics.HubSubscribers.Set(float64(count))
	zap.L().Debug("realtime subscriber removed", zap.Uint64("id", sub.id), zap.String("reason", reason), zap.Int("total", count))
}

// Sweep removes subscribers with no keep-alive activity within the idle timeout.
func (h *Hub) Sweep() int {
	cutoff := h.now().Add(-h.idleTimeout).UnixNano()
	removed := 0
	for _, sub := range h.snapshot() {
		if sub.lastSeen.Load() < cutoff {
			h.remove(sub, "idle")
			removed++
		}
	}
	if removed > 0 {
		zap.L().Info("removed idle realtime subscribers", zap.Int("count", removed))
	}
	return removed
}

func (h *Hub) Start(ctx context.Context) {
	zap.L().Info("Realtime hub sweeper started", zap.Duration("interval", h.sweepInterval))
	go h.run(ctx)
}

func (h *Hub) run(ctx context.Context) {
	ticker := time.NewTicker(h.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping realtime hub")
			h.closeAll()
			return
		case <-ticker.C:
			h.Sweep()
		}
	}
}

func (h *Hub) closeAll() {
	for _, sub := range h.snapshot() {
		h.remove(sub, "shutdown")
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Stats() Stats {
	subs := h.snapshot()
	stats := Stats{Total: len(subs)}
	for _, sub := range subs {
		connectedAt := sub.connectedAt
		if stats.Oldest == nil || connectedAt.Before(*stats.Oldest) {
			stats.Oldest = &connectedAt
		}
		if stats.Newest == nil || connectedAt.After(*stats.Newest) {
			stats.Newest = &connectedAt
		}
	}
	return stats
}
