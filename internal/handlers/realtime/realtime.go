package realtime

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/dto"
	"github.com/GlebRadaev/thetop36/internal/realtime"
	"github.com/GlebRadaev/thetop36/pkg/utils"
)

const (
	DefaultKeepAlive = 30 * time.Second
	bufferSize       = 16
)

var errSlowConsumer = errors.New("subscriber buffer full")

type Hub interface {
	Subscribe(deliver realtime.DeliverFunc) *realtime.Subscription
	Stats() realtime.Stats
}

type RealtimeHandler struct {
	hub       Hub
	keepAlive time.Duration
}

func New(hub Hub, keepAlive time.Duration) *RealtimeHandler {
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	return &RealtimeHandler{
		hub:       hub,
		keepAlive: keepAlive,
	}
}

// Stream godoc
//
//	@Summary		Live updates
//	@Description	Server-sent events carrying leaderboard_update and winner_update envelopes
//	@Tags			Realtime
//	@Produce		text/event-stream
//	@Success		200	{string}	string	"event stream"
//	@Failure		500	{object}	utils.Response	"Streaming unsupported"
//	@Router			/api/realtime/stream [get]
func (h *RealtimeHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	events := make(chan []byte, bufferSize)
	sub := h.hub.Subscribe(func(data []byte) error {
		select {
		case events <- data:
			return nil
		default:
			return errSlowConsumer
		}
	})
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.Done():
			zap.L().Debug("realtime stream closed by hub", zap.Uint64("id", sub.ID()))
			return
		case data := <-events:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		case now := <-ticker.C:
			if _, err := fmt.Fprintf(w, ": ping %d\n\n", now.UnixMilli()); err != nil {
				return
			}
			flusher.Flush()
			sub.Touch()
		}
	}
}

// Stats godoc
//
//	@Summary		Realtime connection stats
//	@Tags			Realtime
//	@Produce		json
//	@Success		200	{object}	dto.RealtimeStatsDTO
//	@Router			/api/realtime/stats [get]
func (h *RealtimeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.hub.Stats()
	resp := dto.RealtimeStatsDTO{TotalClients: stats.Total}
	if stats.Oldest != nil {
		ms := stats.Oldest.UnixMilli()
		resp.OldestConnection = &ms
	}
	if stats.Newest != nil {
		ms := stats.Newest.UnixMilli()
		resp.NewestConnection = &ms
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
