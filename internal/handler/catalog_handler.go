package handler

import (
	"net/http"

	"fitflow-box/internal/model"
	"fitflow-box/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CatalogHandler handles storefront catalogue requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// ListBoxTypes handles GET /api/boxes requests.
func (h *CatalogHandler) ListBoxTypes(w http.ResponseWriter, r *http.Request) {
	boxes, err := h.service.ListBoxTypes(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, boxes)
}

// GetBoxType handles GET /api/boxes/{id} requests.
func (h *CatalogHandler) GetBoxType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "box type ID is required", h.logger)
		return
	}

	box, err := h.service.GetBoxType(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, box)
}

// ListCycles handles GET /api/cycles requests.
func (h *CatalogHandler) ListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.service.ListCycles(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cycles)
}

// CreateCycle handles POST /api/cycles requests.
func (h *CatalogHandler) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req model.CycleCreateRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	cycle, err := h.service.CreateCycle(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, cycle)
}

// UpdateCycleStatus handles PUT /api/cycles/{id}/status requests.
func (h *CatalogHandler) UpdateCycleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cycle ID format", h.logger)
		return
	}

	var req model.CycleStatusUpdateRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	cycle, err := h.service.SetCycleStatus(r.Context(), id, model.CycleStatus(req.Status))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cycle)
}
