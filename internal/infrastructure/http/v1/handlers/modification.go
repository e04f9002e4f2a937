package handlers

import (
	"github.com/gin-gonic/gin"

	"offerstock/internal/domain/modification"
	"offerstock/internal/infrastructure/http/v1/dto"
)

// ModificationHandler serves modification stock reads and edits.
type ModificationHandler struct {
	*BaseHandler
	service *modification.Service
}

// NewModificationHandler creates a new modification handler.
func NewModificationHandler(base *BaseHandler, service *modification.Service) *ModificationHandler {
	return &ModificationHandler{BaseHandler: base, service: service}
}

// GetQuantity handles GET /modifications/:modificationId/quantity
func (h *ModificationHandler) GetQuantity(c *gin.Context) {
	modificationID, ok := h.ParseID(c, "modificationId")
	if !ok {
		return
	}

	rec, err := h.service.GetQuantity(c.Request.Context(), modificationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromQuantity(modificationID, rec))
}

// UpdateQuantity handles PUT /modifications/:modificationId/quantity
func (h *ModificationHandler) UpdateQuantity(c *gin.Context) {
	modificationID, ok := h.ParseID(c, "modificationId")
	if !ok {
		return
	}

	var req dto.UpdateQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.service.EditQuantity(c.Request.Context(), modificationID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromQuantity(modificationID, rec))
}

// History handles GET /modifications/:modificationId/quantity/history?limit=
func (h *ModificationHandler) History(c *gin.Context) {
	modificationID, ok := h.ParseID(c, "modificationId")
	if !ok {
		return
	}

	changes, err := h.service.History(c.Request.Context(), modificationID,
		h.ParseIntQuery(c, "limit", modification.DefaultHistoryLimit))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromChanges(changes)))
}
