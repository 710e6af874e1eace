package handler

import (
	"net/http"
	"time"

	"fitflow-box/internal/model"
	"fitflow-box/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// PreorderHandler handles the token-based preorder conversion flow.
type PreorderHandler struct {
	service service.PreorderService
	logger  zerolog.Logger
}

// NewPreorderHandler creates a new preorder handler.
func NewPreorderHandler(service service.PreorderService, logger zerolog.Logger) *PreorderHandler {
	return &PreorderHandler{
		service: service,
		logger:  logger.With().Str("handler", "preorder").Logger(),
	}
}

// GetByToken handles GET /api/preorders/{token} requests.
func (h *PreorderHandler) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "conversion token is required", h.logger)
		return
	}

	p, err := h.service.GetByToken(r.Context(), token, time.Now())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Convert handles POST /api/preorders/convert requests.
func (h *PreorderHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req model.PreorderConvertRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.Convert(r.Context(), req.Token, time.Now())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}
