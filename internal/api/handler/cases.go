package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jainesh-shah/CourtTracker/internal/api/respond"
	"github.com/Jainesh-shah/CourtTracker/internal/cache"
	"github.com/Jainesh-shah/CourtTracker/internal/history"
)

const historyPageSize = 100

// GetCaseHistory returns the observation log for a case, newest first.
// @Summary Case observation history
// @Tags cases
// @Produce json
// @Param caseNumber path string true "Case number"
// @Success 200 {array} history.Entry
// @Router /api/v1/cases/{caseNumber}/history [get]
func (h *Handler) GetCaseHistory(w http.ResponseWriter, r *http.Request) {
	caseNumber := chi.URLParam(r, "caseNumber")
	key := "history:" + caseNumber

	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLHistory, true)
		return
	}

	entries, err := h.archive.Entries(r.Context(), caseNumber, historyPageSize)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Could not load case history")
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", "Could not encode case history")
		return
	}
	etag := h.cache.Set(key, data, cache.TTLHistory)
	respond.WriteJSON(w, data, etag, cache.TTLHistory, false)
}

// GetCaseStatistics returns the rolling aggregate for a case.
// @Summary Case statistics
// @Tags cases
// @Produce json
// @Param caseNumber path string true "Case number"
// @Success 200 {object} history.CaseStatistics
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/cases/{caseNumber}/statistics [get]
func (h *Handler) GetCaseStatistics(w http.ResponseWriter, r *http.Request) {
	caseNumber := chi.URLParam(r, "caseNumber")
	key := "stats:" + caseNumber

	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLStatistics, true)
		return
	}

	stats, err := h.archive.Statistics(r.Context(), caseNumber)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Could not load case statistics")
		return
	}
	if stats == nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Case has not been observed")
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", "Could not encode case statistics")
		return
	}
	etag := h.cache.Set(key, data, cache.TTLStatistics)
	respond.WriteJSON(w, data, etag, cache.TTLStatistics, false)
}
