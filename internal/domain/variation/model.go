// Package variation provides read access to product variations: the second
// level of an offer (for example the size under a chosen color).
package variation

import (
	"context"
	"iter"

	"offerstock/internal/core/id"
)

// Constant is a persisted variation constant: the identifier a variation
// keeps across product versions.
type Constant struct {
	Const   id.ID   `db:"variation_const" json:"const"`
	Value   string  `db:"variation_value" json:"value"`
	Postfix *string `db:"variation_postfix" json:"postfix,omitempty"`
}

// OfferVariation describes the variation dimension of a single offer:
// which category field the variations fill in and how many there are.
type OfferVariation struct {
	OfferID   id.ID  `db:"offer_id" json:"offerId"`
	FieldID   id.ID  `db:"field_id" json:"fieldId"`
	Reference string `db:"field_reference" json:"reference"`
	Name      string `db:"field_name" json:"name"`
	Count     int    `db:"variation_count" json:"count"`
}

// Choice is the read-only query interface over product variations.
//
// Sequences are lazy, finite and one-shot: the query runs when ranging
// starts and a second range yields a single error.
type Choice interface {
	// FetchByOfferConst yields the constants of every variation that belongs
	// to an offer whose constant equals offerConst.
	FetchByOfferConst(ctx context.Context, offerConst id.ID) iter.Seq2[Constant, error]

	// FetchByOffer returns the variation dimension of an offer, or nil when
	// the offer has no variations.
	FetchByOffer(ctx context.Context, offerID id.ID) (*OfferVariation, error)

	// FetchExistsByOffer yields ids of the offer's variations that have
	// available stock.
	FetchExistsByOffer(ctx context.Context, offerID id.ID) iter.Seq2[id.ID, error]
}
