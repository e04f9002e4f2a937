// Package variation_repo provides the PostgreSQL implementation of variation.Choice.
package variation_repo

import (
	"context"
	"fmt"
	"iter"

	"github.com/Masterminds/squirrel"

	"offerstock/internal/core/id"
	"offerstock/internal/domain/variation"
	"offerstock/internal/infrastructure/storage/postgres"
)

const (
	offerTable                = "product_offer"
	variationTable            = "product_variation"
	variationQuantityTable    = "product_variation_quantity"
	variationFieldTable       = "category_product_variation"
	modificationTable         = "product_modification"
	modificationQuantityTable = "product_modification_quantity"
)

// VariationRepo implements variation.Choice.
type VariationRepo struct {
	db postgres.Querier
}

// NewVariationRepo creates a new variation repository.
func NewVariationRepo(db postgres.Querier) *VariationRepo {
	return &VariationRepo{db: db}
}

// FetchByOfferConst yields variation constants of offers sharing offerConst.
func (r *VariationRepo) FetchByOfferConst(ctx context.Context, offerConst id.ID) iter.Seq2[variation.Constant, error] {
	return postgres.Stream[variation.Constant](ctx, r.db, "select variations by offer const", byOfferConstQuery(offerConst))
}

// FetchByOffer returns the variation dimension of the offer, or nil.
func (r *VariationRepo) FetchByOffer(ctx context.Context, offerID id.ID) (*variation.OfferVariation, error) {
	return postgres.FindOne[variation.OfferVariation](ctx, r.db, "select variation by offer", byOfferQuery(offerID))
}

// FetchExistsByOffer yields ids of the offer's variations with available stock.
func (r *VariationRepo) FetchExistsByOffer(ctx context.Context, offerID id.ID) iter.Seq2[id.ID, error] {
	return postgres.Stream[id.ID](ctx, r.db, "select variations in stock", existsByOfferQuery(offerID))
}

func byOfferConstQuery(offerConst id.ID) squirrel.SelectBuilder {
	return postgres.Builder().
		Select(
			"variation.const AS variation_const",
			"variation.value AS variation_value",
			"variation.postfix AS variation_postfix",
		).
		Distinct().
		From(offerTable + " offer").
		Join(variationTable + " variation ON variation.offer = offer.id").
		Where(squirrel.Eq{"offer.const": offerConst}).
		OrderBy("variation_value")
}

func byOfferQuery(offerID id.ID) squirrel.SelectBuilder {
	return postgres.Builder().
		Select(
			"offer.id AS offer_id",
			"field.id AS field_id",
			"field.reference AS field_reference",
			"field.name AS field_name",
			"COUNT(variation.id) AS variation_count",
		).
		From(offerTable + " offer").
		Join(variationTable + " variation ON variation.offer = offer.id").
		Join(variationFieldTable + " field ON field.id = variation.category_variation").
		Where(squirrel.Eq{"offer.id": offerID}).
		GroupBy("offer.id", "field.id", "field.reference", "field.name").
		Limit(1)
}

// existsByOfferQuery selects variations with stock available for sale. A
// variation with modifications is judged by their summed counters only; its
// own counters count when it has no modifications.
func existsByOfferQuery(offerID id.ID) squirrel.SelectBuilder {
	return postgres.Builder().
		Select("variation.id").
		From(variationTable + " variation").
		LeftJoin(variationQuantityTable + " variation_quantity ON variation_quantity.variation = variation.id").
		LeftJoin(modificationTable + " modification ON modification.variation = variation.id").
		LeftJoin(modificationQuantityTable + " modification_quantity ON modification_quantity.modification = modification.id").
		Where(squirrel.Eq{"variation.offer": offerID}).
		GroupBy("variation.id", "variation_quantity.quantity", "variation_quantity.reserve").
		Having(inStockCondition()).
		OrderBy("variation.id")
}

func inStockCondition() string {
	return fmt.Sprintf("(COALESCE(SUM(%s), 0) > 0 OR (COUNT(modification.id) = 0 AND %s > 0))",
		availableExpr("modification_quantity"),
		availableExpr("variation_quantity"),
	)
}

// availableExpr renders quantity minus reserve with the same normalization
// as quantity.Record: absent or negative counters count as zero.
func availableExpr(alias string) string {
	return fmt.Sprintf(
		"GREATEST(GREATEST(COALESCE(%[1]s.quantity, 0), 0) - GREATEST(COALESCE(%[1]s.reserve, 0), 0), 0)",
		alias,
	)
}

// Ensure interface compliance.
var _ variation.Choice = (*VariationRepo)(nil)
