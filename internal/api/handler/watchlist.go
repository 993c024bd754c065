package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jainesh-shah/CourtTracker/internal/api/respond"
	"github.com/Jainesh-shah/CourtTracker/internal/watch"
)

// RegisterDevice upserts an owner's push delivery token.
// @Summary Register a device token
// @Tags watchlist
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/devices [post]
func (h *Handler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID  string `json:"owner_id"`
		Token    string `json:"token"`
		Platform string `json:"platform"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}
	if req.OwnerID == "" || req.Token == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_FIELD", "owner_id and token are required")
		return
	}
	if req.Platform == "" {
		req.Platform = "unknown"
	}

	if err := h.watches.RegisterDevice(r.Context(), req.OwnerID, req.Token, req.Platform); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Could not register device")
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, map[string]interface{}{"registered": true})
}

// GetWatchlist lists an owner's active subscriptions.
// @Summary List watched cases
// @Tags watchlist
// @Produce json
// @Param owner_id query string true "Owner id"
// @Success 200 {array} watch.Subscription
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/watchlist [get]
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_FIELD", "owner_id query parameter is required")
		return
	}

	subs, err := h.watches.OwnerSubscriptions(r.Context(), ownerID)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Could not load watchlist")
		return
	}
	if subs == nil {
		subs = []watch.Subscription{}
	}
	respond.WriteJSONObject(w, http.StatusOK, subs)
}

// CreateWatch adds a case to an owner's watchlist. The identifier goes
// through the same parser the state machine uses, so malformed court scopes
// are rejected here instead of silently never matching.
// @Summary Watch a case
// @Tags watchlist
// @Accept json
// @Produce json
// @Success 201 {object} watch.Subscription
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/watchlist [post]
func (h *Handler) CreateWatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID        string       `json:"owner_id"`
		CaseIdentifier string       `json:"case_identifier"`
		Flags          *watch.Flags `json:"flags,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}
	if req.OwnerID == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_FIELD", "owner_id is required")
		return
	}
	if _, err := watch.ParseIdentifier(req.CaseIdentifier); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_IDENTIFIER", err.Error())
		return
	}

	flags := watch.DefaultFlags()
	if req.Flags != nil {
		flags = *req.Flags
	}

	sub := watch.NewSubscription(req.OwnerID, req.CaseIdentifier, flags)
	if err := h.watches.Create(r.Context(), sub); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Could not create subscription")
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, sub)
}

// DeleteWatch soft-deactivates a subscription.
// @Summary Stop watching a case
// @Tags watchlist
// @Produce json
// @Param subscriptionID path string true "Subscription id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/watchlist/{subscriptionID} [delete]
func (h *Handler) DeleteWatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subscriptionID")
	if err := h.watches.Deactivate(r.Context(), id); err != nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Subscription not found")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"deactivated": true})
}

// GetWatchAudit returns recent notification outcomes for a subscription.
// @Summary Notification audit trail
// @Tags watchlist
// @Produce json
// @Param subscriptionID path string true "Subscription id"
// @Success 200 {array} notify.Outcome
// @Router /api/v1/watchlist/{subscriptionID}/audit [get]
func (h *Handler) GetWatchAudit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subscriptionID")
	outcomes, err := h.audit.Outcomes(r.Context(), id, 50)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Could not load audit trail")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, outcomes)
}
