// Package modification_repo provides PostgreSQL storage for modification stock.
package modification_repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"offerstock/internal/core/id"
	"offerstock/internal/domain/modification"
	"offerstock/internal/domain/quantity"
	"offerstock/internal/infrastructure/storage/postgres"
)

const quantityTable = "product_modification_quantity"

const upsertSuffix = "ON CONFLICT (modification) DO UPDATE SET " +
	"quantity = EXCLUDED.quantity, reserve = EXCLUDED.reserve, updated_at = EXCLUDED.updated_at"

type quantityRow struct {
	Quantity *int `db:"quantity"`
	Reserve  *int `db:"reserve"`
}

// QuantityRepo implements modification.Repository.
type QuantityRepo struct {
	db  postgres.Querier
	now func() time.Time
}

// NewQuantityRepo creates a new modification quantity repository.
func NewQuantityRepo(db postgres.Querier) *QuantityRepo {
	return &QuantityRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// GetQuantity returns the stored counters, or nil when the modification has none.
func (r *QuantityRepo) GetQuantity(ctx context.Context, modificationID id.ID) (*quantity.Record, error) {
	row, err := postgres.FindOne[quantityRow](ctx, r.db, "select modification quantity", getQuery(modificationID))
	if err != nil || row == nil {
		return nil, err
	}
	return quantity.FromStored(row.Quantity, row.Reserve), nil
}

// SaveQuantity upserts the normalized counters of rec.
func (r *QuantityRepo) SaveQuantity(ctx context.Context, modificationID id.ID, rec *quantity.Record) error {
	_, err := postgres.Exec(ctx, r.db, "upsert modification quantity", saveStmt(modificationID, rec, r.now()))
	return err
}

func getQuery(modificationID id.ID) squirrel.SelectBuilder {
	return postgres.Builder().
		Select("quantity", "reserve").
		From(quantityTable).
		Where(squirrel.Eq{"modification": modificationID}).
		Limit(1)
}

func saveStmt(modificationID id.ID, rec *quantity.Record, at time.Time) squirrel.InsertBuilder {
	return postgres.Builder().
		Insert(quantityTable).
		Columns("modification", "quantity", "reserve", "updated_at").
		Values(modificationID, rec.Quantity(), rec.Reserve(), at).
		Suffix(upsertSuffix)
}

// Ensure interface compliance.
var _ modification.Repository = (*QuantityRepo)(nil)
