package handler

import (
	"net/http"

	"fitflow-box/internal/lifecycle"
	"fitflow-box/internal/model"
	"fitflow-box/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SubscriptionHandler handles subscription-related HTTP requests.
type SubscriptionHandler struct {
	service service.SubscriptionService
	logger  zerolog.Logger
}

// NewSubscriptionHandler creates a new subscription handler.
func NewSubscriptionHandler(service service.SubscriptionService, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		logger:  logger.With().Str("handler", "subscription").Logger(),
	}
}

// subscriptionResponse pairs a subscription with its derived capability
// flags so the account UI can enable/disable actions without re-deriving.
type subscriptionResponse struct {
	Subscription *model.Subscription     `json:"subscription"`
	Derived      *lifecycle.DerivedState `json:"derived"`
}

func (h *SubscriptionHandler) subscriptionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid subscription ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// Get handles GET /api/subscriptions/{id} requests.
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.subscriptionID(w, r)
	if !ok {
		return
	}

	sub, derived, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, subscriptionResponse{Subscription: sub, Derived: derived})
}

// ApplyAction handles POST /api/subscriptions/{id}/actions requests.
func (h *SubscriptionHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.subscriptionID(w, r)
	if !ok {
		return
	}

	var req model.SubscriptionActionRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	action, err := lifecycle.ParseAction(req.Action)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	sub, err := h.service.ApplyAction(r.Context(), id, action)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	derived := lifecycle.ComputeDerivedState(sub)
	writeJSON(w, http.StatusOK, subscriptionResponse{Subscription: sub, Derived: &derived})
}

// UpdatePreferences handles PUT /api/subscriptions/{id}/preferences requests.
func (h *SubscriptionHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := h.subscriptionID(w, r)
	if !ok {
		return
	}

	var req model.PreferencesUpdateRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	sub, err := h.service.UpdatePreferences(r.Context(), id, req.Preferences)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// ChangeFrequency handles PUT /api/subscriptions/{id}/frequency requests.
func (h *SubscriptionHandler) ChangeFrequency(w http.ResponseWriter, r *http.Request) {
	id, ok := h.subscriptionID(w, r)
	if !ok {
		return
	}

	var req model.FrequencyChangeRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	sub, err := h.service.ChangeFrequency(r.Context(), id, model.Frequency(req.Frequency))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}
