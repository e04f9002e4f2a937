package variation

import (
	"context"
	"fmt"
	"iter"

	"offerstock/internal/core/apperror"
	"offerstock/internal/core/id"
	"offerstock/pkg/logger"
)

// Service exposes variation lookups to the HTTP layer.
type Service struct {
	choice Choice
}

// NewService creates a new variation service.
func NewService(choice Choice) *Service {
	return &Service{choice: choice}
}

// ConstantsByOfferConst returns every variation constant of the offers
// sharing offerConst.
func (s *Service) ConstantsByOfferConst(ctx context.Context, offerConst id.ID) ([]Constant, error) {
	if id.IsNil(offerConst) {
		return nil, apperror.NewValidation("offer const is required").WithDetail("field", "offerConst")
	}

	items, err := collect(s.choice.FetchByOfferConst(ctx, offerConst))
	if err != nil {
		return nil, fmt.Errorf("fetch variations by offer const: %w", err)
	}

	logger.Debug(ctx, "variation constants fetched", "offer_const", offerConst, "count", len(items))
	return items, nil
}

// ByOffer returns the variation dimension of an offer.
// A missing dimension is reported as NotFound.
func (s *Service) ByOffer(ctx context.Context, offerID id.ID) (*OfferVariation, error) {
	if id.IsNil(offerID) {
		return nil, apperror.NewValidation("offer id is required").WithDetail("field", "offerId")
	}

	v, err := s.choice.FetchByOffer(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("fetch variation by offer: %w", err)
	}
	if v == nil {
		return nil, apperror.NewNotFound("offer variation", offerID.String())
	}
	return v, nil
}

// InStockByOffer returns ids of the offer's variations with available stock.
func (s *Service) InStockByOffer(ctx context.Context, offerID id.ID) ([]id.ID, error) {
	if id.IsNil(offerID) {
		return nil, apperror.NewValidation("offer id is required").WithDetail("field", "offerId")
	}

	ids, err := collect(s.choice.FetchExistsByOffer(ctx, offerID))
	if err != nil {
		return nil, fmt.Errorf("fetch variations in stock: %w", err)
	}

	logger.Debug(ctx, "variations in stock fetched", "offer_id", offerID, "count", len(ids))
	return ids, nil
}

// collect drains seq, stopping at the first error.
func collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	items := make([]T, 0)
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
