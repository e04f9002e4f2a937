// Package material_repo provides the PostgreSQL implementation of material.QuantityByArticle.
package material_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"offerstock/internal/core/id"
	"offerstock/internal/domain/material"
	"offerstock/internal/domain/quantity"
	"offerstock/internal/infrastructure/storage/postgres"
)

const (
	materialTable    = "material"
	skuTable         = "material_sku"
	skuQuantityTable = "material_sku_quantity"
)

// articleRow is the flat result of the article lookup.
type articleRow struct {
	MaterialID id.ID  `db:"material_id"`
	SKUID      id.ID  `db:"sku_id"`
	Article    string `db:"article"`
	Name       string `db:"name"`
	Quantity   *int   `db:"quantity"`
	Reserve    *int   `db:"reserve"`
}

// QuantityRepo implements material.QuantityByArticle.
type QuantityRepo struct {
	db postgres.Querier
}

// NewQuantityRepo creates a new material quantity repository.
func NewQuantityRepo(db postgres.Querier) *QuantityRepo {
	return &QuantityRepo{db: db}
}

// FindQuantityByArticle returns the stock of the SKU carrying article, or nil.
// A SKU without a stock row reads as an empty record.
func (r *QuantityRepo) FindQuantityByArticle(ctx context.Context, article string) (*material.ArticleQuantity, error) {
	row, err := postgres.FindOne[articleRow](ctx, r.db, "select material quantity by article", byArticleQuery(article))
	if err != nil || row == nil {
		return nil, err
	}

	return &material.ArticleQuantity{
		MaterialID: row.MaterialID,
		SKUID:      row.SKUID,
		Article:    row.Article,
		Name:       row.Name,
		Stock:      quantity.FromStored(row.Quantity, row.Reserve),
	}, nil
}

func byArticleQuery(article string) squirrel.SelectBuilder {
	return postgres.Builder().
		Select(
			"material.id AS material_id",
			"sku.id AS sku_id",
			"sku.article",
			"material.name",
			"stock.quantity",
			"stock.reserve",
		).
		From(skuTable + " sku").
		Join(materialTable + " material ON material.id = sku.material").
		LeftJoin(skuQuantityTable + " stock ON stock.sku = sku.id").
		Where(squirrel.Eq{"sku.article": article}).
		Limit(1)
}

// Ensure interface compliance.
var _ material.QuantityByArticle = (*QuantityRepo)(nil)
