package dto

import (
	"encoding/json"
	"time"

	"offerstock/internal/core/id"
	"offerstock/internal/domain/modification"
	"offerstock/internal/domain/quantity"
)

// UpdateQuantityRequest is the body of PUT /modifications/:id/quantity.
// Both counters are required; null or missing fields are rejected.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
	Reserve  *int `json:"reserve"`
}

// ToInput converts the request to the validated input boundary.
func (r UpdateQuantityRequest) ToInput() quantity.Input {
	return quantity.Input{Quantity: r.Quantity, Reserve: r.Reserve}
}

// QuantityResponse is the normalized stock of one modification.
type QuantityResponse struct {
	ModificationID string `json:"modificationId"`
	Quantity       int    `json:"quantity"`
	Reserve        int    `json:"reserve"`
	Available      int    `json:"available"`
}

// FromQuantity converts a record to response DTO.
func FromQuantity(modificationID id.ID, r *quantity.Record) QuantityResponse {
	return QuantityResponse{
		ModificationID: modificationID.String(),
		Quantity:       r.Quantity(),
		Reserve:        r.Reserve(),
		Available:      r.Available(),
	}
}

// QuantityChangeResponse is one audited stock edit.
type QuantityChangeResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	UserID    string          `json:"userId,omitempty"`
	Changes   json.RawMessage `json:"changes"`
	CreatedAt time.Time       `json:"createdAt"`
}

// FromChanges converts audit history to response DTOs.
func FromChanges(changes []modification.Change) []QuantityChangeResponse {
	out := make([]QuantityChangeResponse, len(changes))
	for i, ch := range changes {
		out[i] = QuantityChangeResponse{
			ID:        ch.ID.String(),
			Action:    ch.Action,
			UserID:    ch.UserID,
			Changes:   ch.Changes,
			CreatedAt: ch.CreatedAt,
		}
	}
	return out
}
