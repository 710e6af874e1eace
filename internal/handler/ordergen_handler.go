package handler

import (
	"net/http"

	"fitflow-box/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderGenHandler exposes the staff batch endpoint that generates orders for
// a delivery cycle ahead of its shipment window.
type OrderGenHandler struct {
	service service.OrderGenService
	logger  zerolog.Logger
}

// NewOrderGenHandler creates a new order generation handler.
func NewOrderGenHandler(service service.OrderGenService, logger zerolog.Logger) *OrderGenHandler {
	return &OrderGenHandler{
		service: service,
		logger:  logger.With().Str("handler", "ordergen").Logger(),
	}
}

// Generate handles POST /api/cycles/{id}/generate-orders requests.
func (h *OrderGenHandler) Generate(w http.ResponseWriter, r *http.Request) {
	cycleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cycle ID format", h.logger)
		return
	}

	report, err := h.service.GenerateForCycle(r.Context(), cycleID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
