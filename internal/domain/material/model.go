// Package material provides stock lookups for materials (raw goods consumed
// by production) addressed by their article code.
package material

import (
	"context"

	"offerstock/internal/core/id"
	"offerstock/internal/domain/quantity"
)

// ArticleQuantity is the stock of one material SKU.
type ArticleQuantity struct {
	MaterialID id.ID
	SKUID      id.ID
	Article    string
	Name       string
	Stock      *quantity.Record
}

// QuantityByArticle looks up material stock by article code.
type QuantityByArticle interface {
	// FindQuantityByArticle returns nil when no SKU carries the article.
	FindQuantityByArticle(ctx context.Context, article string) (*ArticleQuantity, error)
}
