package dto

import "offerstock/internal/domain/material"

// MaterialQuantityResponse is the stock of a material SKU.
type MaterialQuantityResponse struct {
	MaterialID string `json:"materialId"`
	SKUID      string `json:"skuId"`
	Article    string `json:"article"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Reserve    int    `json:"reserve"`
	Available  int    `json:"available"`
}

// FromArticleQuantity converts entity to response DTO.
func FromArticleQuantity(q *material.ArticleQuantity) MaterialQuantityResponse {
	return MaterialQuantityResponse{
		MaterialID: q.MaterialID.String(),
		SKUID:      q.SKUID.String(),
		Article:    q.Article,
		Name:       q.Name,
		Quantity:   q.Stock.Quantity(),
		Reserve:    q.Stock.Reserve(),
		Available:  q.Stock.Available(),
	}
}
