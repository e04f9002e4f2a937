// Package quantity provides the stock/reserve counter pair attached to a
// product modification while it is being created or edited.
package quantity

// Record carries the "in stock" and "reserved" counters of one product
// modification between the input boundary and persistence.
//
// The zero Record is ready to use and reads back 0/0. Stored values may be
// absent (NULL columns) or negative (written without going through Input);
// reads never expose either and rewrite the field to the normalized value.
type Record struct {
	quantity *int
	reserve  *int
}

// FromStored builds a Record from nullable stored columns.
func FromStored(quantity, reserve *int) *Record {
	return &Record{quantity: quantity, reserve: reserve}
}

// SetQuantity stores the raw in-stock value.
func (r *Record) SetQuantity(v int) {
	r.quantity = &v
}

// SetReserve stores the raw reserved value.
func (r *Record) SetReserve(v int) {
	r.reserve = &v
}

// Quantity returns units currently in stock, never negative.
func (r *Record) Quantity() int {
	return normalize(&r.quantity)
}

// Reserve returns units reserved against pending allocation, never negative.
func (r *Record) Reserve() int {
	return normalize(&r.reserve)
}

// Available returns the units that can still be sold.
func (r *Record) Available() int {
	return max(r.Quantity()-r.Reserve(), 0)
}

// normalize reads *field, treating absent, zero and negative values alike,
// and writes the result back.
//
// An explicit 0 and "never set" are indistinguishable afterwards.
func normalize(field **int) int {
	v := 0
	if *field != nil && **field > 0 {
		v = **field
	}
	*field = &v
	return v
}
