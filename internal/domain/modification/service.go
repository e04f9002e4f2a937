// Package modification provides the stock edit workflow for product
// modifications, the third and most specific level of an offer.
package modification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"offerstock/internal/core/apperror"
	"offerstock/internal/core/id"
	"offerstock/internal/domain/quantity"
	"offerstock/pkg/logger"
)

// EntityType names modification stock in the audit log.
const EntityType = "product_modification_quantity"

// Repository persists the stock counters of a modification.
type Repository interface {
	// GetQuantity returns the stored record, or nil when none was saved yet.
	GetQuantity(ctx context.Context, modificationID id.ID) (*quantity.Record, error)

	// SaveQuantity creates or replaces the stored record.
	SaveQuantity(ctx context.Context, modificationID id.ID, rec *quantity.Record) error
}

// History page sizes: the default applies when the caller asks for no
// limit, the maximum caps whatever the caller asks for.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 1000
)

// Change is one recorded stock edit.
type Change struct {
	ID        id.ID
	Action    string
	UserID    string
	Changes   json.RawMessage
	CreatedAt time.Time
}

// AuditLogger receives the before/after state of every accepted edit
// and serves them back as history.
type AuditLogger interface {
	LogQuantityChange(ctx context.Context, modificationID id.ID, created bool, before, after map[string]any) error
	QuantityHistory(ctx context.Context, modificationID id.ID, limit int) ([]Change, error)
}

// Service runs the modification stock workflow.
type Service struct {
	repo  Repository
	audit AuditLogger
}

// NewService creates a new modification service. audit may be nil.
func NewService(repo Repository, audit AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// GetQuantity returns the normalized stock of a modification. A modification
// without stored counters reads as an empty record.
func (s *Service) GetQuantity(ctx context.Context, modificationID id.ID) (*quantity.Record, error) {
	if id.IsNil(modificationID) {
		return nil, apperror.NewValidation("modification id is required").WithDetail("field", "modificationId")
	}

	rec, err := s.repo.GetQuantity(ctx, modificationID)
	if err != nil {
		return nil, fmt.Errorf("get modification quantity: %w", err)
	}
	if rec == nil {
		rec = &quantity.Record{}
	}
	return rec, nil
}

// EditQuantity validates in, applies it to the current record and saves the
// result. Rejected input never reaches the record or the database.
func (s *Service) EditQuantity(ctx context.Context, modificationID id.ID, in quantity.Input) (*quantity.Record, error) {
	if id.IsNil(modificationID) {
		return nil, apperror.NewValidation("modification id is required").WithDetail("field", "modificationId")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetQuantity(ctx, modificationID)
	if err != nil {
		return nil, fmt.Errorf("load modification quantity: %w", err)
	}

	created := current == nil
	if created {
		current = &quantity.Record{}
	}
	before := snapshot(current)

	if err := in.ApplyTo(current); err != nil {
		return nil, err
	}

	if err := s.repo.SaveQuantity(ctx, modificationID, current); err != nil {
		return nil, fmt.Errorf("save modification quantity: %w", err)
	}

	after := snapshot(current)
	logger.Info(ctx, "modification quantity saved",
		"modification_id", modificationID,
		"quantity", after["quantity"],
		"reserve", after["reserve"],
		"created", created,
	)

	s.recordAudit(ctx, modificationID, created, before, after)

	return current, nil
}

// History returns the recorded edits of a modification, newest first.
func (s *Service) History(ctx context.Context, modificationID id.ID, limit int) ([]Change, error) {
	if id.IsNil(modificationID) {
		return nil, apperror.NewValidation("modification id is required").WithDetail("field", "modificationId")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if s.audit == nil {
		return []Change{}, nil
	}

	changes, err := s.audit.QuantityHistory(ctx, modificationID, limit)
	if err != nil {
		return nil, fmt.Errorf("load quantity history: %w", err)
	}
	return changes, nil
}

func (s *Service) recordAudit(ctx context.Context, modificationID id.ID, created bool, before, after map[string]any) {
	if s.audit == nil {
		return
	}
	if !created && unchanged(before, after) {
		return
	}
	if err := s.audit.LogQuantityChange(ctx, modificationID, created, before, after); err != nil {
		logger.Warn(ctx, "failed to record quantity audit entry",
			"modification_id", modificationID,
			"error", err,
		)
	}
}

func snapshot(r *quantity.Record) map[string]any {
	return map[string]any{
		"quantity": r.Quantity(),
		"reserve":  r.Reserve(),
	}
}

func unchanged(before, after map[string]any) bool {
	for k, v := range after {
		if before[k] != v {
			return false
		}
	}
	return true
}
