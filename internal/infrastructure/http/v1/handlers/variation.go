package handlers

import (
	"github.com/gin-gonic/gin"

	"offerstock/internal/domain/variation"
	"offerstock/internal/infrastructure/http/v1/dto"
)

// VariationHandler serves read-only variation queries.
type VariationHandler struct {
	*BaseHandler
	service *variation.Service
}

// NewVariationHandler creates a new variation handler.
func NewVariationHandler(base *BaseHandler, service *variation.Service) *VariationHandler {
	return &VariationHandler{BaseHandler: base, service: service}
}

// ListByOfferConst handles GET /offer-consts/:offerConst/variations
func (h *VariationHandler) ListByOfferConst(c *gin.Context) {
	offerConst, ok := h.ParseID(c, "offerConst")
	if !ok {
		return
	}

	constants, err := h.service.ConstantsByOfferConst(c.Request.Context(), offerConst)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromConstants(constants)))
}

// GetByOffer handles GET /offers/:offerId/variation
func (h *VariationHandler) GetByOffer(c *gin.Context) {
	offerID, ok := h.ParseID(c, "offerId")
	if !ok {
		return
	}

	v, err := h.service.ByOffer(c.Request.Context(), offerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOfferVariation(v))
}

// ListInStock handles GET /offers/:offerId/variations/in-stock
func (h *VariationHandler) ListInStock(c *gin.Context) {
	offerID, ok := h.ParseID(c, "offerId")
	if !ok {
		return
	}

	ids, err := h.service.InStockByOffer(c.Request.Context(), offerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromIDs(ids)))
}

