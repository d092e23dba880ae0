package service

import (
	"context"

	"stallpos/internal/model"
)

// AuditSink records activity events. The contract is strictly fire-and-forget:
// implementations return the constructed log row, or nil when recording failed
// for any reason — callers never inspect the error and never abort on it.
// Inventory correctness must not depend on the audit subsystem's availability.
type AuditSink interface {
	Record(ctx context.Context, action, category, description string, details map[string]any, actor string) *model.ActivityLog
}

// NopAuditSink discards all events. Used where no sink is wired.
type NopAuditSink struct{}

func (NopAuditSink) Record(context.Context, string, string, string, map[string]any, string) *model.ActivityLog {
	return nil
}
