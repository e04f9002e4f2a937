package quantity

import (
	"offerstock/internal/core/apperror"
)

// Field names used in validation details.
const (
	FieldQuantity = "quantity"
	FieldReserve  = "reserve"
)

// Input is the quantity payload submitted by forms and the admin API.
// Nil means the field was left blank.
type Input struct {
	Quantity *int `json:"quantity"`
	Reserve  *int `json:"reserve"`
}

// CheckCounter guards a single counter: it must be present and >= 0.
// It returns nil when the value is acceptable.
func CheckCounter(field string, v *int) error {
	if msg := counterViolation(v); msg != "" {
		return apperror.NewValidation(field+" "+msg).
			WithFieldError(field, msg)
	}
	return nil
}

func counterViolation(v *int) string {
	switch {
	case v == nil:
		return "must not be blank"
	case *v < 0:
		return "must be greater than or equal to 0"
	}
	return ""
}

// Validate checks both counters and rejects the whole input with a single
// validation error listing every offending field.
func (in Input) Validate() error {
	var appErr *apperror.AppError
	for _, f := range []struct {
		name  string
		value *int
	}{
		{FieldQuantity, in.Quantity},
		{FieldReserve, in.Reserve},
	} {
		msg := counterViolation(f.value)
		if msg == "" {
			continue
		}
		if appErr == nil {
			appErr = apperror.NewValidation("invalid quantity input")
		}
		appErr.WithFieldError(f.name, msg)
	}
	if appErr != nil {
		return appErr
	}
	return nil
}

// ApplyTo validates the input and, only if it is accepted, stores both
// counters in r. A rejected input leaves r untouched.
func (in Input) ApplyTo(r *Record) error {
	if err := in.Validate(); err != nil {
		return err
	}
	r.SetQuantity(*in.Quantity)
	r.SetReserve(*in.Reserve)
	return nil
}
