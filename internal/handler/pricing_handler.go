package handler

import (
	"net/http"

	"fitflow-box/internal/model"
	"fitflow-box/internal/service"

	"github.com/rs/zerolog"
)

// PricingHandler handles storefront quote requests.
type PricingHandler struct {
	service service.PricingService
	logger  zerolog.Logger
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(service service.PricingService, logger zerolog.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		logger:  logger.With().Str("handler", "pricing").Logger(),
	}
}

// Quote handles POST /api/pricing/quote requests.
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req model.QuoteRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	quote, err := h.service.Quote(r.Context(), req.BoxTypeID, req.PromoCode)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}
