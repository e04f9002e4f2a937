package dto

import (
	"offerstock/internal/core/id"
	"offerstock/internal/domain/variation"
)

// VariationConstantResponse is one variation constant of an offer group.
type VariationConstantResponse struct {
	Const   string  `json:"const"`
	Value   string  `json:"value"`
	Postfix *string `json:"postfix,omitempty"`
}

// FromConstants converts variation constants to response DTOs.
func FromConstants(constants []variation.Constant) []VariationConstantResponse {
	out := make([]VariationConstantResponse, len(constants))
	for i, c := range constants {
		out[i] = VariationConstantResponse{
			Const:   c.Const.String(),
			Value:   c.Value,
			Postfix: c.Postfix,
		}
	}
	return out
}

// OfferVariationResponse describes the variation dimension of an offer.
type OfferVariationResponse struct {
	OfferID   string `json:"offerId"`
	FieldID   string `json:"fieldId"`
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

// FromOfferVariation converts entity to response DTO.
func FromOfferVariation(v *variation.OfferVariation) OfferVariationResponse {
	return OfferVariationResponse{
		OfferID:   v.OfferID.String(),
		FieldID:   v.FieldID.String(),
		Reference: v.Reference,
		Name:      v.Name,
		Count:     v.Count,
	}
}

// FromIDs renders ids as strings.
func FromIDs(ids []id.ID) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}
