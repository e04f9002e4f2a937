package handlers

import (
	"github.com/gin-gonic/gin"

	"offerstock/internal/domain/material"
	"offerstock/internal/infrastructure/http/v1/dto"
)

// MaterialHandler serves material stock lookups.
type MaterialHandler struct {
	*BaseHandler
	service *material.Service
}

// NewMaterialHandler creates a new material handler.
func NewMaterialHandler(base *BaseHandler, service *material.Service) *MaterialHandler {
	return &MaterialHandler{BaseHandler: base, service: service}
}

// QuantityByArticle handles GET /materials/quantity?article=TA01-16-205-55-94V
func (h *MaterialHandler) QuantityByArticle(c *gin.Context) {
	q, err := h.service.FindByArticle(c.Request.Context(), c.Query("article"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromArticleQuantity(q))
}
