package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/inmobot-ai/realty-platform/internal/middleware"
	"github.com/inmobot-ai/realty-platform/internal/model"
	"github.com/inmobot-ai/realty-platform/internal/service"
	"github.com/inmobot-ai/realty-platform/internal/store"
	"github.com/inmobot-ai/realty-platform/pkg/logger"
)

// maxUploadBytes caps property sheet uploads at 15MB.
const maxUploadBytes = 15 << 20

// PropertyHandler serves the agent's inventory: upload, extract, save,
// list and delete.
type PropertyHandler struct {
	listings *service.ListingService
	logger   *logger.Logger
}

// NewPropertyHandler creates a property handler.
func NewPropertyHandler(listings *service.ListingService, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{listings: listings, logger: log}
}

// List handles GET /api/v1/properties.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	agentID := middleware.GetAgentID(r.Context())

	props, err := h.listings.List(r.Context(), agentID)
	if err != nil {
		h.logger.Error("list properties failed", zap.Error(err), zap.Int64("agent_id", agentID))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if props == nil {
		props = []model.Property{}
	}

	writeJSON(w, http.StatusOK, props)
}

// Extract handles POST /api/v1/properties/extract: a multipart PDF upload
// answered with a structured draft for review.
func (h *PropertyHandler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	draft, sheetText, err := h.listings.Extract(r.Context(), data)
	if err != nil {
		if errors.Is(err, service.ErrScannedDocument) {
			writeError(w, http.StatusUnprocessableEntity, "el documento parece escaneado, no contiene texto legible")
			return
		}
		h.logger.Error("sheet extraction failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, model.ExtractResponse{Draft: draft, SheetText: sheetText})
}

// Save handles POST /api/v1/properties: confirms a reviewed draft.
func (h *PropertyHandler) Save(w http.ResponseWriter, r *http.Request) {
	agentID := middleware.GetAgentID(r.Context())

	var req model.SaveListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateTitle(req.Title); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prop, err := h.listings.Save(r.Context(), agentID, &req)
	if err != nil {
		h.logger.Error("save property failed", zap.Error(err), zap.Int64("agent_id", agentID))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, prop)
}

// Delete handles DELETE /api/v1/properties/{id}.
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	agentID := middleware.GetAgentID(r.Context())

	propertyID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	if err := h.listings.Delete(r.Context(), agentID, propertyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "property not found")
			return
		}
		h.logger.Error("delete property failed", zap.Error(err), zap.Int64("agent_id", agentID))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
