package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Jainesh-shah/CourtTracker/internal/api/respond"
)

// GetStatus reports scheduler health for external monitoring.
// @Summary Poll scheduler status
// @Tags board
// @Produce json
// @Success 200 {object} scheduler.Status
// @Router /api/v1/status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.sched.Status())
}

// GetBoard serves the most recent normalized snapshot.
// @Summary Current display board
// @Tags board
// @Produce json
// @Success 200 {object} feed.Snapshot
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/board [get]
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	snap := h.sched.Latest()
	if snap == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "NO_SNAPSHOT",
			"No board snapshot available yet")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, snap)
}

// LiveStream pushes each new snapshot to the client as server-sent events.
// @Summary Live board updates (SSE)
// @Tags board
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /api/v1/live [get]
func (h *Handler) LiveStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respond.WriteError(w, http.StatusInternalServerError, "STREAM_UNSUPPORTED",
			"Streaming not supported by this connection")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	snapshots, cancel := h.hub.Subscribe()
	defer cancel()

	for {
		select {
		case snap, open := <-snapshots:
			if !open {
				return
			}
			data, err := json.Marshal(snap)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
