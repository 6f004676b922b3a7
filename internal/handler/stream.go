package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wanderwise-ai/trip-planner/internal/middleware"
	"github.com/wanderwise-ai/trip-planner/internal/model"
	natsclient "github.com/wanderwise-ai/trip-planner/internal/nats"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
	"github.com/wanderwise-ai/trip-planner/pkg/metrics"
)

// StreamHandler serves the trip progress event stream over SSE.
type StreamHandler struct {
	streamManager *natsclient.StreamManager
	logger        *logger.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(streamManager *natsclient.StreamManager, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		streamManager: streamManager,
		logger:        log,
	}
}

// Events handles GET /api/v1/trips/{id}/events
// Supports ?after_sequence=N for resuming from a specific point. The stream
// replays recorded progress, then polls for new events until the pipeline
// reaches a terminal stage or the client disconnects.
func (h *StreamHandler) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tripID := chi.URLParam(r, "id")

	if err := middleware.ValidateTripID(tripID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var afterSequence uint64
	if seqStr := r.URL.Query().Get("after_sequence"); seqStr != "" {
		seq, err := strconv.ParseUint(seqStr, 10, 64)
		if err == nil {
			afterSequence = seq
		}
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	sendSSEEvent(w, flusher, "connected", map[string]string{
		"trip_id": tripID,
	})

	lastSequence := afterSequence
	terminal := false

	poll := time.NewTicker(2 * time.Second)
	defer poll.Stop()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		events, lastSeq, _, err := h.streamManager.GetTripEvents(ctx, tripID, lastSequence, 50)
		if err != nil {
			h.logger.Error("failed to fetch trip events", "error", err, "trip_id", tripID)
			sendSSEEvent(w, flusher, "error", map[string]string{
				"code":    "replay_error",
				"message": "failed to fetch trip events",
			})
			return
		}

		for _, event := range events {
			select {
			case <-ctx.Done():
				return
			default:
			}

			sendSSEEvent(w, flusher, "progress", event)
			if event.Stage == model.StageDone || event.Stage == model.StageFailed {
				terminal = true
			}
		}
		if lastSeq > lastSequence {
			lastSequence = lastSeq
		}

		if terminal {
			sendSSEEvent(w, flusher, "done", map[string]interface{}{
				"trip_id":       tripID,
				"last_sequence": lastSequence,
			})
			return
		}

		select {
		case <-ctx.Done():
			h.logger.Info("SSE client disconnected", "trip_id", tripID)
			return
		case <-heartbeat.C:
			sendSSEEvent(w, flusher, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
		case <-poll.C:
		}
	}
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
	flusher.Flush()

	return nil
}
