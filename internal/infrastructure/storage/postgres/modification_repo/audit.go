package modification_repo

import (
	"context"

	"offerstock/internal/core/id"
	"offerstock/internal/domain/modification"
	"offerstock/internal/infrastructure/storage/postgres"
)

// AuditAdapter records modification stock edits in sys_audit.
type AuditAdapter struct {
	audit *postgres.AuditService
}

// NewAuditAdapter wraps the shared audit service.
func NewAuditAdapter(audit *postgres.AuditService) *AuditAdapter {
	return &AuditAdapter{audit: audit}
}

// LogQuantityChange stores the field-level diff between before and after.
func (a *AuditAdapter) LogQuantityChange(
	ctx context.Context,
	modificationID id.ID,
	created bool,
	before, after map[string]any,
) error {
	action := postgres.AuditActionUpdate
	if created {
		action = postgres.AuditActionCreate
	}
	return a.audit.LogChange(ctx, modification.EntityType, modificationID, action, postgres.Diff(before, after))
}

// QuantityHistory returns the latest recorded edits, newest first.
func (a *AuditAdapter) QuantityHistory(ctx context.Context, modificationID id.ID, limit int) ([]modification.Change, error) {
	entries, err := a.audit.History(ctx, modification.EntityType, modificationID, limit)
	if err != nil {
		return nil, err
	}

	changes := make([]modification.Change, 0, len(entries))
	for _, e := range entries {
		changes = append(changes, modification.Change{
			ID:        e.ID,
			Action:    string(e.Action),
			UserID:    e.UserID,
			Changes:   e.Changes,
			CreatedAt: e.CreatedAt,
		})
	}
	return changes, nil
}

// Ensure interface compliance.
var _ modification.AuditLogger = (*AuditAdapter)(nil)
